// Package view derives presentation-ready task lists from the store.
// Nothing here mutates its input.
package view

import (
	"strings"
	"sync"

	"github.com/Natatashkin/todo/internal/service"
)

// PartitionByStatus splits tasks into completed and open tasks, each in
// source order.
func PartitionByStatus(tasks []service.Task) (completed, open []service.Task) {
	completed = []service.Task{}
	open = []service.Task{}
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			open = append(open, t)
		}
	}
	return completed, open
}

// ComposeDisplayOrder returns open tasks followed by completed tasks.
func ComposeDisplayOrder(tasks []service.Task) []service.Task {
	completed, open := PartitionByStatus(tasks)
	return append(open, completed...)
}

// ApplyFilter keeps the tasks whose title contains filter, ignoring case.
// An empty filter keeps everything. The result is never nil.
func ApplyFilter(ordered []service.Task, filter string) []service.Task {
	normalized := strings.ToLower(filter)
	result := make([]service.Task, 0, len(ordered))
	for _, t := range ordered {
		if normalized == "" || strings.Contains(strings.ToLower(t.Title), normalized) {
			result = append(result, t)
		}
	}
	return result
}

// Source is the read side of the task store.
type Source interface {
	Tasks() []service.Task
	Version() uint64
}

// Result is a projected view of the collection.
type Result struct {
	Tasks     []service.Task // display order, filtered
	Open      int            // open tasks in the whole collection
	Completed int            // completed tasks in the whole collection
	Total     int
}

// Projector recomputes the display order only when the source changes,
// and the filtered list only when the source or the filter changes.
type Projector struct {
	src Source

	mu        sync.Mutex
	version   uint64
	primed    bool
	ordered   []service.Task
	open      int
	completed int

	filter   string
	filtered []service.Task
}

// NewProjector creates a projector over src.
func NewProjector(src Source) *Projector {
	return &Projector{src: src}
}

// Project returns the display-ordered, filtered view of the source.
func (p *Projector) Project(filter string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	version := p.src.Version()
	if !p.primed || version != p.version {
		completed, open := PartitionByStatus(p.src.Tasks())
		p.ordered = append(open, completed...)
		p.open = len(open)
		p.completed = len(completed)
		p.version = version
		p.filtered = ApplyFilter(p.ordered, filter)
		p.filter = filter
		p.primed = true
	} else if filter != p.filter {
		p.filtered = ApplyFilter(p.ordered, filter)
		p.filter = filter
	}

	tasks := make([]service.Task, len(p.filtered))
	copy(tasks, p.filtered)
	return Result{
		Tasks:     tasks,
		Open:      p.open,
		Completed: p.completed,
		Total:     p.open + p.completed,
	}
}
