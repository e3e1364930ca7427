// Package service defines the backend-agnostic contract of the remote task service.
package service

import "context"

// Service defines the interface for remote task backend operations.
// The remote service is the source of truth; the dashboard never
// imports a backend SDK directly.
type Service interface {
	// ListTasks returns the full task collection in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the canonical record,
	// including the server-assigned ID.
	CreateTask(ctx context.Context, payload NewTask) (Task, error)

	// UpdateTask replaces the task with the given ID by the full record
	// and returns the record as stored by the server.
	UpdateTask(ctx context.Context, id string, task Task) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
