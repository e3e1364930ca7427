// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/Natatashkin/todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are assigned sequentially, starting after the highest numeric ID seeded.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  map[string]int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// BeforeCall runs before each operation is applied, outside the lock.
	// Tests use it to hold a call in flight.
	BeforeCall func(op, id string)

	// Respond rewrites the record returned by create and update calls.
	Respond func(op string, task service.Task) service.Task
}

// NewFakeService creates a new FakeService seeded with the given tasks.
func NewFakeService(seed ...service.Task) *FakeService {
	fs := &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
	}
	for _, t := range seed {
		fs.AddTask(t)
	}
	return fs
}

// AddTask adds a task directly, bypassing error injection.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	if n, err := strconv.Atoi(t.ID); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
}

// Tasks returns a copy of the server-side collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Calls returns how many times op was invoked ("list", "create", "update", "delete").
func (f *FakeService) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *FakeService) enter(op, id string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
	if f.BeforeCall != nil {
		f.BeforeCall(op, id)
	}
}

func (f *FakeService) respond(op string, t service.Task) service.Task {
	if f.Respond != nil {
		return f.Respond(op, t)
	}
	return t
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.enter("list", "")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, payload service.NewTask) (service.Task, error) {
	f.enter("create", "")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	task := service.Task{
		ID:        strconv.Itoa(f.nextID),
		Title:     payload.Title,
		Completed: payload.Completed,
		OwnerID:   payload.OwnerID,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()
	return f.respond("create", task), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, task service.Task) (service.Task, error) {
	f.enter("update", id)
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			task.ID = id
			f.tasks[i] = task
			return f.respond("update", task), nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.enter("delete", id)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}
