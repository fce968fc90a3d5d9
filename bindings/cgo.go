package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"encoding/json"
	"strings"
	"unsafe"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/db"
	"github.com/coredb-io/coredb/ps"
)

// Handle represents an open database instance
type Handle struct {
	instance *coredb.Instance
	engine   *db.Executor
}

// Global handle storage (simplified - in production use a map with mutex)
var handles = make(map[int]*Handle)
var nextHandle = 1

// Response mirrors the server protocol for consistency
type Response struct {
	Success      bool       `json:"success"`
	Error        string     `json:"error,omitempty"`
	Message      string     `json:"message,omitempty"`
	Columns      []string   `json:"columns,omitempty"`
	Rows         []core.Row `json:"rows,omitempty"`
	AffectedRows int        `json:"affected_rows"`
	TimeMs       float64    `json:"time_ms"`
}

func register(instance *coredb.Instance) C.int {
	handle := nextHandle
	nextHandle++
	handles[handle] = &Handle{
		instance: instance,
		engine:   instance.Executor(),
	}
	return C.int(handle)
}

//export coredb_open_memory
func coredb_open_memory() C.int {
	return register(coredb.Open(ps.NewIndexedManager(ps.NewMemoryManager())))
}

//export coredb_open_file
func coredb_open_file(path *C.char, mode *C.char) C.int {
	base := ps.NewFileManager(C.GoString(path))

	var storage ps.Manager = base
	if strings.ToLower(C.GoString(mode)) != "plain" {
		storage = ps.NewIndexedManager(base)
	}
	return register(coredb.Open(storage))
}

//export coredb_close
func coredb_close(handle C.int) {
	delete(handles, int(handle))
}

//export coredb_execute
func coredb_execute(handle C.int, query *C.char) *C.char {
	h, ok := handles[int(handle)]
	if !ok {
		return makeErrorResponse("Invalid handle")
	}

	result := h.engine.Execute(C.GoString(query))

	resp := Response{
		Success:      result.Success,
		Message:      result.Message,
		AffectedRows: result.AffectedRows,
		TimeMs:       float64(result.ExecutionTime.Microseconds()) / 1000,
	}
	if result.Success {
		resp.Columns = result.Columns
		resp.Rows = result.Rows
	} else {
		resp.Error = result.Message
	}

	jsonData, _ := json.Marshal(resp)
	return C.CString(string(jsonData))
}

//export coredb_free
func coredb_free(ptr *C.char) {
	C.free(unsafe.Pointer(ptr))
}

func makeErrorResponse(msg string) *C.char {
	resp := Response{
		Success: false,
		Error:   msg,
	}
	jsonData, _ := json.Marshal(resp)
	return C.CString(string(jsonData))
}

func main() {}
