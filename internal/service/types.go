package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by backends when the remote task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned by backends when credentials are missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// Task represents a single todo item.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	OwnerID   string `json:"ownerId" yaml:"owner_id"`
}

// NewTask is the payload for creating a task. The server assigns the ID.
type NewTask struct {
	OwnerID   string
	Title     string
	Completed bool
}

// Validate checks that a task returned by a backend has the fixed shape
// the dashboard relies on.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("malformed task: missing id")
	}
	return nil
}
