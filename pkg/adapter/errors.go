package adapter

import "fmt"

// NotFoundError is returned when a referenced table does not exist.
type NotFoundError struct {
	Table string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table %s not found", e.Table)
}

// SchemaError is returned when table metadata retrieval fails for any
// reason other than the table being absent.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to describe table %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ExecutionError is returned when query execution fails. The backend
// message is surfaced verbatim; syntax, permission, and timeout failures
// are not distinguished.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
