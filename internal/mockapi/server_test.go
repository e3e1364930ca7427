package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Natatashkin/todo/internal/mockapi"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return mockapi.New(nil, mockapi.SampleTodos()...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestListTodos(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodGet, "/todos", "")

	require.Equal(t, http.StatusOK, w.Code)
	todos := decode[[]mockapi.Todo](t, w)
	require.Len(t, todos, 2)
	assert.Equal(t, 1, todos[0].ID)
	assert.Equal(t, "Pay bills", todos[1].Title)
	assert.NotEmpty(t, w.Header().Get(mockapi.RequestIDHeader))
}

func TestCreateTodo_AssignsNextID(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPost, "/todos", `{"userId":1,"title":"New task","completed":false}`)

	require.Equal(t, http.StatusCreated, w.Code)
	todo := decode[mockapi.Todo](t, w)
	assert.Equal(t, 3, todo.ID)
	assert.Equal(t, "New task", todo.Title)
	assert.JSONEq(t, "1", string(todo.UserID))

	list := decode[[]mockapi.Todo](t, do(t, h, http.MethodGet, "/todos", ""))
	assert.Len(t, list, 3)
}

func TestCreateTodo_RequiresTitle(t *testing.T) {
	h := newServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/todos", `{"completed":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/todos", `not json`).Code)
}

func TestReplaceTodo(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPut, "/todos/2", `{"id":2,"title":"Pay all bills"}`)

	require.Equal(t, http.StatusOK, w.Code)
	todo := decode[mockapi.Todo](t, w)
	assert.Equal(t, 2, todo.ID)
	assert.Equal(t, "Pay all bills", todo.Title)
	assert.False(t, todo.Completed, "PUT resets omitted fields")
	assert.JSONEq(t, "1", string(todo.UserID), "owner is kept")
}

func TestPatchTodo(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPatch, "/todos/1", `{"completed":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	todo := decode[mockapi.Todo](t, w)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.True(t, todo.Completed)
}

func TestDeleteTodo(t *testing.T) {
	h := newServer(t)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/todos/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/todos/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/todos/1", "").Code)
}

func TestUnknownIDs(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/todos/99", ""},
		{http.MethodGet, "/todos/abc", ""},
		{http.MethodPut, "/todos/99", `{"title":"x"}`},
		{http.MethodPatch, "/todos/0", `{"title":"x"}`},
		{http.MethodDelete, "/todos/-1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, do(t, h, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(mockapi.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(mockapi.RequestIDHeader))
}
