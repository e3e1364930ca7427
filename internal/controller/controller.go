// Package controller turns user intents into task store calls and owns the
// transient dashboard state: loading flag, filter text, modal and the task
// selected for editing.
package controller

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/store"
	"github.com/Natatashkin/todo/internal/view"
)

// TaskStore is the part of store.Store the controller drives.
type TaskStore interface {
	LoadAll(ctx context.Context) error
	Create(ctx context.Context, d store.Draft) (service.Task, error)
	UpdateText(ctx context.Context, id, title string) (service.Task, error)
	UpdateStatus(ctx context.Context, id string, p store.Patch) (service.Task, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (service.Task, bool)
	Tasks() []service.Task
	Version() uint64
}

// Controller sequences user intents. It is safe for concurrent use; the
// state lock is never held across a store call.
type Controller struct {
	store     TaskStore
	projector *view.Projector
	log       *log.Logger

	mu        sync.Mutex
	loading   bool
	filter    string
	modalOpen bool
	current   *service.Task
	notice    string
}

// New creates a controller for a session backed by s. The session starts
// in the loading state.
func New(s TaskStore, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		store:     s,
		projector: view.NewProjector(s),
		log:       logger.WithPrefix("controller"),
		loading:   true,
	}
}

// Start performs the initial load. The loading flag clears whether or not
// the load succeeded.
func (c *Controller) Start(ctx context.Context) error {
	err := c.store.LoadAll(ctx)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	c.report(err)
	return err
}

// Refresh reloads the collection. The loading flag is not touched.
func (c *Controller) Refresh(ctx context.Context) error {
	err := c.store.LoadAll(ctx)
	c.report(err)
	return err
}

// IsLoading reports whether the initial load is still pending.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// FilterText returns the active filter.
func (c *Controller) FilterText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// IsModalOpen reports whether the create/edit modal is open.
func (c *Controller) IsModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalOpen
}

// CurrentTask returns the task selected for editing. ok is false in create mode.
func (c *Controller) CurrentTask() (task service.Task, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return service.Task{}, false
	}
	return *c.current, true
}

// Notice returns the message of the last failed operation, or "".
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// ClearNotice dismisses the current notice.
func (c *Controller) ClearNotice() {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()
}

// SelectTaskForEdit sets the current task. Nil selects create mode.
// The modal is not opened.
func (c *Controller) SelectTaskForEdit(task *service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCurrent(task)
}

// ToggleCreateOrEdit sets the current task and flips the modal.
// A nil task enters create mode.
func (c *Controller) ToggleCreateOrEdit(task *service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCurrent(task)
	c.modalOpen = !c.modalOpen
}

// CloseModal closes the modal. The current task is left as is.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	c.modalOpen = false
	c.mu.Unlock()
}

// SubmitTitle creates a task in create mode or renames the current task in
// edit mode. A successful rename refreshes the current task to the server's
// record. The modal closes afterwards even if the call failed; the failure
// is kept in Notice.
func (c *Controller) SubmitTitle(ctx context.Context, value string) error {
	current, editing := c.CurrentTask()

	var err error
	if editing {
		var updated service.Task
		updated, err = c.store.UpdateText(ctx, current.ID, value)
		if err == nil {
			c.refreshCurrent(updated)
		}
	} else {
		_, err = c.store.Create(ctx, store.Draft{Title: value})
	}

	c.CloseModal()
	c.report(err)
	return err
}

// SubmitStatusChange applies a partial update to a task. The modal is not
// touched.
func (c *Controller) SubmitStatusChange(ctx context.Context, id string, p store.Patch) error {
	_, err := c.store.UpdateStatus(ctx, id, p)
	c.report(err)
	return err
}

// ToggleCompleted flips the completion flag of the task with the given id.
func (c *Controller) ToggleCompleted(ctx context.Context, id string) error {
	task, ok := c.store.Get(id)
	if !ok {
		c.report(store.ErrNotFound)
		return store.ErrNotFound
	}
	completed := !task.Completed
	return c.SubmitStatusChange(ctx, id, store.Patch{Completed: &completed})
}

// SetFilterText updates the filter. No remote calls are made.
func (c *Controller) SetFilterText(value string) {
	c.mu.Lock()
	c.filter = value
	c.mu.Unlock()
}

// RequestDelete deletes the task with the given id.
func (c *Controller) RequestDelete(ctx context.Context, id string) error {
	err := c.store.Delete(ctx, id)
	c.report(err)
	return err
}

// View returns the display-ordered task list for the active filter.
func (c *Controller) View() view.Result {
	return c.projector.Project(c.FilterText())
}

func (c *Controller) setCurrent(task *service.Task) {
	if task == nil {
		c.current = nil
		return
	}
	t := *task
	c.current = &t
}

// refreshCurrent replaces the current task with t if it is still selected.
func (c *Controller) refreshCurrent(t service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.ID == t.ID {
		c.current = &t
	}
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.notice = err.Error()
	c.mu.Unlock()
	c.log.Debug("intent failed", "err", err)
}
