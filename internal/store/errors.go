package store

import "fmt"

const (
	opList   = "list"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// RemoteCallError reports a failed call to the remote task service.
// The collection is left exactly as it was before the call.
type RemoteCallError struct {
	Op  string // "list", "create", "update" or "delete"
	ID  string // task id, empty for list and create
	Err error
}

func (e *RemoteCallError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s task %s: %v", e.Op, e.ID, e.Err)
	}
	if e.Op == opList {
		return fmt.Sprintf("list tasks: %v", e.Err)
	}
	return fmt.Sprintf("%s task: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
