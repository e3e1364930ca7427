// Package mockapi serves an in-memory /todos REST API compatible with the
// rest backend, for local development and tests.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// Server is the mock task API.
type Server struct {
	router *gin.Engine
	store  *memStore
	log    *log.Logger
	server *http.Server
}

// New creates a server holding the seed todos.
func New(logger *log.Logger, seed ...Todo) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store: newMemStore(seed),
		log:   logger.WithPrefix("mockapi"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	todos := router.Group("/todos")
	{
		todos.GET("", s.listTodos)
		todos.POST("", s.createTodo)
		todos.GET("/:id", s.getTodo)
		todos.PUT("/:id", s.replaceTodo)
		todos.PATCH("/:id", s.patchTodo)
		todos.DELETE("/:id", s.deleteTodo)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router = router
	return s
}

// SampleTodos returns a small starting collection.
func SampleTodos() []Todo {
	owner := json.RawMessage("1")
	return []Todo{
		{ID: 1, UserID: owner, Title: "Buy milk", Completed: false},
		{ID: 2, UserID: owner, Title: "Pay bills", Completed: true},
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", requestID,
		)
	}
}

type todoInput struct {
	UserID    json.RawMessage `json:"userId"`
	Title     *string         `json:"title"`
	Completed *bool           `json:"completed"`
}

func (s *Server) listTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.list())
}

func (s *Server) getTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	t, found := s.store.get(id)
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTodo(c *gin.Context) {
	var in todoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if in.Title == nil {
		badRequest(c, "title is required")
		return
	}

	t := Todo{UserID: in.UserID, Title: *in.Title}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	c.JSON(http.StatusCreated, s.store.insert(t))
}

// replaceTodo handles PUT: absent fields are reset.
func (s *Server) replaceTodo(c *gin.Context) {
	s.writeTodo(c, true)
}

// patchTodo handles PATCH: absent fields are kept.
func (s *Server) patchTodo(c *gin.Context) {
	s.writeTodo(c, false)
}

func (s *Server) writeTodo(c *gin.Context, replace bool) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	var in todoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid body")
		return
	}

	t, found := s.store.update(id, func(t *Todo) {
		if replace {
			*t = Todo{UserID: t.UserID}
		}
		if len(in.UserID) > 0 {
			t.UserID = in.UserID
		}
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Completed != nil {
			t.Completed = *in.Completed
		}
	})
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	if !s.store.remove(id) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func todoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
