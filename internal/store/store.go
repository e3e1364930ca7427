// Package store owns the canonical in-memory task collection of a dashboard session.
//
// The collection is mutated only after the remote service confirms an operation.
// Remote calls run without holding the lock; when a call resolves, its result is
// merged into the collection as it is at that moment, so concurrent mutations
// never overwrite each other with a stale snapshot.
package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Natatashkin/todo/internal/service"
)

var (
	// ErrNotFound is returned when an update names a task that is not in the collection.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when a create or edit carries a blank title.
	ErrEmptyTitle = errors.New("title required")
)

// Draft is the user input for a new task.
type Draft struct {
	Title string
}

// Patch is a partial update. Nil fields keep the current value.
type Patch struct {
	Title     *string
	Completed *bool
}

// Apply returns t with the patch merged over it.
func (p Patch) Apply(t service.Task) service.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Store holds the task collection for one session.
type Store struct {
	svc     service.Service
	ownerID string
	log     *log.Logger

	mu      sync.RWMutex
	tasks   []service.Task
	loaded  bool
	version uint64
}

// New creates an empty store backed by svc. Tasks created through the store
// carry ownerID.
func New(svc service.Service, ownerID string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		svc:     svc,
		ownerID: ownerID,
		log:     logger.WithPrefix("store"),
		tasks:   []service.Task{},
	}
}

// LoadAll fetches the full collection and replaces the store's contents.
// The store counts as loaded afterwards even if the fetch failed.
func (s *Store) LoadAll(ctx context.Context) error {
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.mu.Lock()
		s.loaded = true
		s.mu.Unlock()
		return s.fail(opList, "", err)
	}

	clean := s.sanitize(tasks)

	s.mu.Lock()
	s.tasks = clean
	s.loaded = true
	s.version++
	s.mu.Unlock()

	s.log.Debug("collection loaded", "count", len(clean))
	return nil
}

// Create asks the remote service to create a task with the trimmed title and
// prepends the confirmed record.
func (s *Store) Create(ctx context.Context, d Draft) (service.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return service.Task{}, ErrEmptyTitle
	}

	created, err := s.svc.CreateTask(ctx, service.NewTask{
		OwnerID:   s.ownerID,
		Title:     title,
		Completed: false,
	})
	if err != nil {
		return service.Task{}, s.fail(opCreate, "", err)
	}
	if err := created.Validate(); err != nil {
		return service.Task{}, s.fail(opCreate, "", err)
	}

	s.apply(func(current []service.Task) []service.Task {
		return prepend(created, current)
	})
	s.log.Debug("task created", "id", created.ID)
	return created, nil
}

// UpdateText replaces the title of the task with the given id. Surrounding
// whitespace is dropped. On success the task moves to the front of the
// collection.
func (s *Store) UpdateText(ctx context.Context, id, title string) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, ErrEmptyTitle
	}
	return s.UpdateStatus(ctx, id, Patch{Title: &title})
}

// UpdateStatus merges p over the task with the given id and sends the full
// record to the remote service. On success the server's record replaces any
// record with that id and moves to the front of the collection.
func (s *Store) UpdateStatus(ctx context.Context, id string, p Patch) (service.Task, error) {
	original, ok := s.Get(id)
	if !ok {
		s.log.Warn("update of unknown task", "id", id)
		return service.Task{}, ErrNotFound
	}

	updated, err := s.svc.UpdateTask(ctx, id, p.Apply(original))
	if err != nil {
		return service.Task{}, s.fail(opUpdate, id, err)
	}
	if err := updated.Validate(); err != nil {
		return service.Task{}, s.fail(opUpdate, id, err)
	}

	s.apply(func(current []service.Task) []service.Task {
		return prepend(updated, without(current, id))
	})
	s.log.Debug("task updated", "id", updated.ID)
	return updated, nil
}

// Delete asks the remote service to delete the task and removes it from the
// collection once confirmed.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail(opDelete, id, err)
	}

	s.apply(func(current []service.Task) []service.Task {
		return without(current, id)
	})
	s.log.Debug("task deleted", "id", id)
	return nil
}

// Tasks returns a copy of the collection in store order. Never nil.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Get looks up a task by id.
func (s *Store) Get(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Loaded reports whether the initial fetch has resolved.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version increases every time the collection changes.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// apply replaces the collection with fn(current) in one step.
// fn must not retain or modify its argument.
func (s *Store) apply(fn func(current []service.Task) []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = fn(s.tasks)
	s.version++
}

// fail logs a remote failure and wraps it. The collection is not touched.
func (s *Store) fail(op, id string, err error) error {
	rerr := &RemoteCallError{Op: op, ID: id, Err: err}
	s.log.Error("remote call failed", "op", op, "id", id, "err", err)
	return rerr
}

// sanitize drops records without an id and later duplicates of an id.
func (s *Store) sanitize(tasks []service.Task) []service.Task {
	clean := make([]service.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			s.log.Warn("dropping malformed task", "err", err)
			continue
		}
		if seen[t.ID] {
			s.log.Warn("dropping duplicate task", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		clean = append(clean, t)
	}
	return clean
}

// prepend puts t first and drops any other record with t's id.
func prepend(t service.Task, tasks []service.Task) []service.Task {
	result := make([]service.Task, 0, len(tasks)+1)
	result = append(result, t)
	for _, existing := range tasks {
		if existing.ID != t.ID {
			result = append(result, existing)
		}
	}
	return result
}

func without(tasks []service.Task, id string) []service.Task {
	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}
