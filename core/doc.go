// Package core provides core types used throughout CoreDB.
//
// The package defines the Value sum type carried through the engine,
// the schema types (Table, Column, ForeignKey) and the error taxonomy
// shared by the parser, the storage layer and the executor.
//
// # Values
//
// Every cell in a row is a Value tagged with a ValueKind:
//
//	v := core.NewInteger(42)
//	v.Kind // core.KindInteger
//
// The zero Value is Null, so reading an absent column from a Row
// yields Null.
//
// # Table Definition
//
//	table := core.Table{
//	    Name: "users",
//	    Columns: []core.Column{
//	        {Name: "id", Type: core.IntType, PrimaryKey: true},
//	        {Name: "name", Type: core.TextType, Nullable: true},
//	    },
//	}
//
// Column types are advisory metadata: values keep the type of the
// literal they were written with.
package core
