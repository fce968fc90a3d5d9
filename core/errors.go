package core

import (
	"errors"
	"fmt"
)

var errUnsupportedJSON = errors.New("unsupported JSON value")

// EngineError marks errors the executor reports verbatim as a failed
// result. Anything else surfaces as an unexpected-error result.
type EngineError interface {
	error
	engineError()
}

// SyntaxError reports malformed SQL.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return "syntax error: " + e.Msg }
func (e *SyntaxError) engineError() {}

// Syntaxf builds a SyntaxError from a format string.
func Syntaxf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' does not exist", e.Table)
}
func (e *TableNotFoundError) engineError() {}

type TableExistsError struct {
	Table string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table '%s' already exists", e.Table)
}
func (e *TableExistsError) engineError() {}

// ColumnNotFoundError reports a reference to a column that neither the
// schema nor the row being evaluated contains. Table is empty when the
// reference was resolved against a row rather than a schema.
type ColumnNotFoundError struct {
	Column string
	Table  string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column '%s' does not exist in table '%s'", e.Column, e.Table)
	}
	return fmt.Sprintf("column '%s' does not exist", e.Column)
}
func (e *ColumnNotFoundError) engineError() {}

// TypeMismatchError reports a comparison between values of different
// kinds (Null aside).
type TypeMismatchError struct {
	Left   ValueKind
	Right  ValueKind
	Column string
}

func (e *TypeMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("cannot compare %s with %s for column '%s'", e.Left, e.Right, e.Column)
	}
	return fmt.Sprintf("cannot compare %s with %s", e.Left, e.Right)
}
func (e *TypeMismatchError) engineError() {}

// CardinalityError reports an INSERT whose value count does not match
// its column count.
type CardinalityError struct {
	Columns int
	Values  int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("expected %d values, got %d", e.Columns, e.Values)
}
func (e *CardinalityError) engineError() {}

// StorageError wraps an I/O or encoding failure from the persistence
// layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}
func (e *StorageError) Unwrap() error { return e.Err }
func (e *StorageError) engineError()  {}

// IsEngineError reports whether err belongs to the engine's error
// taxonomy anywhere along its chain.
func IsEngineError(err error) bool {
	for err != nil {
		if _, ok := err.(EngineError); ok {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
