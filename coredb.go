package coredb

import (
	"github.com/coredb-io/coredb/db"
	"github.com/coredb-io/coredb/ps"
)

type Instance struct {
	Storage ps.Manager
}

func Open(storage ps.Manager) *Instance {
	return &Instance{
		Storage: storage,
	}
}

func (instance *Instance) Executor() *db.Executor {
	return db.NewExecutor(instance.Storage)
}
