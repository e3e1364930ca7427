package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/store"
	"github.com/Natatashkin/todo/internal/testutil"
)

var errBackend = errors.New("service unavailable")

func seededStore(t *testing.T, seed ...service.Task) (*store.Store, *testutil.FakeService) {
	t.Helper()
	svc := testutil.NewFakeService(seed...)
	s := store.New(svc, "1", nil)
	require.NoError(t, s.LoadAll(context.Background()))
	return s, svc
}

func ids(tasks []service.Task) []string {
	result := make([]string, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.ID)
	}
	return result
}

func boolPtr(b bool) *bool { return &b }

func TestLoadAll_ReplacesContents(t *testing.T) {
	s, svc := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills", Completed: true},
	)
	assert.Equal(t, []string{"1", "2"}, ids(s.Tasks()))
	assert.True(t, s.Loaded())

	svc.AddTask(service.Task{ID: "7", Title: "Walk dog"})
	require.NoError(t, s.LoadAll(context.Background()))
	assert.Equal(t, []string{"1", "2", "7"}, ids(s.Tasks()))
}

func TestLoadAll_EmptyCollection(t *testing.T) {
	s, _ := seededStore(t)

	tasks := s.Tasks()
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.True(t, s.Loaded())
}

func TestLoadAll_FailureMarksLoadedAndKeepsState(t *testing.T) {
	s, svc := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})
	svc.ListTasksErr = errBackend

	err := s.LoadAll(context.Background())

	var rerr *store.RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "list", rerr.Op)
	assert.ErrorIs(t, err, errBackend)
	assert.True(t, s.Loaded())
	assert.Equal(t, []string{"1"}, ids(s.Tasks()))
}

func TestLoadAll_DropsMalformedAndDuplicateRecords(t *testing.T) {
	svc := testutil.NewFakeService(
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "", Title: "no id"},
		service.Task{ID: "1", Title: "duplicate"},
		service.Task{ID: "2", Title: "Pay bills"},
	)
	s := store.New(svc, "1", nil)

	require.NoError(t, s.LoadAll(context.Background()))

	tasks := s.Tasks()
	assert.Equal(t, []string{"1", "2"}, ids(tasks))
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestCreate_PrependsServerRecord(t *testing.T) {
	s, svc := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk", OwnerID: "1"},
		service.Task{ID: "2", Title: "Pay bills", Completed: true, OwnerID: "1"},
	)

	created, err := s.Create(context.Background(), store.Draft{Title: "New task"})
	require.NoError(t, err)

	assert.Equal(t, service.Task{ID: "3", Title: "New task", Completed: false, OwnerID: "1"}, created)
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Tasks()))
	assert.Equal(t, 1, svc.Calls("create"))
}

func TestCreate_FailureLeavesCollectionUnchanged(t *testing.T) {
	s, svc := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})
	svc.CreateTaskErr = errBackend
	before := s.Tasks()

	_, err := s.Create(context.Background(), store.Draft{Title: "New task"})

	var rerr *store.RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "create", rerr.Op)
	assert.Equal(t, before, s.Tasks())
}

func TestCreate_BlankTitleRejectedWithoutRemoteCall(t *testing.T) {
	s, svc := seededStore(t)

	_, err := s.Create(context.Background(), store.Draft{Title: "   "})

	assert.ErrorIs(t, err, store.ErrEmptyTitle)
	assert.Equal(t, 0, svc.Calls("create"))
	assert.Empty(t, s.Tasks())
}

func TestCreate_TrimsTitle(t *testing.T) {
	s, _ := seededStore(t)

	created, err := s.Create(context.Background(), store.Draft{Title: "  padded  "})

	require.NoError(t, err)
	assert.Equal(t, "padded", created.Title)
	assert.Equal(t, "padded", s.Tasks()[0].Title)
}

func TestUpdateText_TrimsTitle(t *testing.T) {
	s, _ := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})

	updated, err := s.UpdateText(context.Background(), "1", "\tBuy oat milk ")

	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	task, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Buy oat milk", task.Title)
}

func TestCreate_MalformedResponseRejected(t *testing.T) {
	s, svc := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})
	svc.Respond = func(op string, task service.Task) service.Task {
		task.ID = ""
		return task
	}

	_, err := s.Create(context.Background(), store.Draft{Title: "New task"})

	var rerr *store.RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, []string{"1"}, ids(s.Tasks()))
}

func TestUpdateText_MovesTaskToFront(t *testing.T) {
	s, _ := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk", OwnerID: "1"},
		service.Task{ID: "2", Title: "Pay bills", OwnerID: "1"},
		service.Task{ID: "3", Title: "Walk dog", OwnerID: "1"},
	)

	updated, err := s.UpdateText(context.Background(), "2", "X")
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "1", updated.OwnerID, "fields not in the edit are kept")
	tasks := s.Tasks()
	assert.Equal(t, []string{"2", "1", "3"}, ids(tasks))
	assert.Equal(t, "X", tasks[0].Title)
}

func TestUpdateText_UnknownID(t *testing.T) {
	s, svc := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})

	_, err := s.UpdateText(context.Background(), "42", "X")

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, svc.Calls("update"))
}

func TestUpdateText_FailureLeavesCollectionUnchanged(t *testing.T) {
	s, svc := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills"},
	)
	svc.UpdateTaskErr = errBackend
	before := s.Tasks()

	_, err := s.UpdateText(context.Background(), "2", "X")

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, before, s.Tasks())
}

func TestUpdateStatus_TogglesCompleted(t *testing.T) {
	s, svc := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills"},
	)

	updated, err := s.UpdateStatus(context.Background(), "2", store.Patch{Completed: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, "Pay bills", updated.Title)
	assert.Equal(t, []string{"2", "1"}, ids(s.Tasks()))
	assert.True(t, svc.Tasks()[1].Completed)
}

func TestDelete_RemovesTask(t *testing.T) {
	s, _ := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills"},
	)

	require.NoError(t, s.Delete(context.Background(), "1"))

	assert.Equal(t, []string{"2"}, ids(s.Tasks()))
	_, ok := s.Get("1")
	assert.False(t, ok)
}

func TestDelete_UnknownLocallyGoesToRemote(t *testing.T) {
	s, svc := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})
	svc.AddTask(service.Task{ID: "9", Title: "Added elsewhere"})
	version := s.Version()

	require.NoError(t, s.Delete(context.Background(), "9"))

	assert.Equal(t, 1, svc.Calls("delete"))
	assert.Equal(t, []string{"1"}, ids(s.Tasks()))
	assert.Len(t, svc.Tasks(), 1)
	assert.Greater(t, s.Version(), version)

	err := s.Delete(context.Background(), "42")

	var rerr *store.RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, []string{"1"}, ids(s.Tasks()))
}

func TestDelete_FailureLeavesCollectionUnchanged(t *testing.T) {
	s, svc := seededStore(t,
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills"},
	)
	svc.DeleteTaskErr = errBackend
	before := s.Tasks()
	version := s.Version()

	err := s.Delete(context.Background(), "1")

	var rerr *store.RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "delete", rerr.Op)
	assert.Equal(t, "1", rerr.ID)
	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, version, s.Version())
}

func TestVersion_BumpsOnEveryAppliedChange(t *testing.T) {
	s, _ := seededStore(t, service.Task{ID: "1", Title: "Buy milk"})
	v0 := s.Version()

	_, err := s.Create(context.Background(), store.Draft{Title: "New task"})
	require.NoError(t, err)
	v1 := s.Version()
	require.NoError(t, s.Delete(context.Background(), "1"))
	v2 := s.Version()

	assert.Greater(t, v1, v0)
	assert.Greater(t, v2, v1)
}

// An update that resolves after other mutations must merge against the
// collection as it is then, not as it was when the update started.
func TestUpdate_MergesAgainstCurrentCollection(t *testing.T) {
	svc := testutil.NewFakeService(
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Pay bills"},
	)
	started := make(chan struct{})
	release := make(chan struct{})
	svc.BeforeCall = func(op, id string) {
		if op == "update" {
			close(started)
			<-release
		}
	}
	s := store.New(svc, "1", nil)
	require.NoError(t, s.LoadAll(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := s.UpdateText(context.Background(), "1", "Buy oat milk")
		done <- err
	}()
	<-started

	created, err := s.Create(context.Background(), store.Draft{Title: "Walk dog"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), "2"))

	close(release)
	require.NoError(t, <-done)

	tasks := s.Tasks()
	assert.Equal(t, []string{"1", created.ID}, ids(tasks))
	assert.Equal(t, "Buy oat milk", tasks[0].Title)
}

func TestRemoteCallError_Message(t *testing.T) {
	err := &store.RemoteCallError{Op: "delete", ID: "7", Err: errBackend}
	assert.Equal(t, "delete task 7: service unavailable", err.Error())

	err = &store.RemoteCallError{Op: "list", Err: errBackend}
	assert.Equal(t, "list tasks: service unavailable", err.Error())

	err = &store.RemoteCallError{Op: "create", Err: errBackend}
	assert.Equal(t, "create task: service unavailable", err.Error())
}
