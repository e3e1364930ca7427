// Package rest implements service.Service against a JSON REST API with a
// JSONPlaceholder-style /todos resource.
package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/service"
)

const (
	// DefaultTimeout is the timeout for API calls when none is configured.
	DefaultTimeout = 5 * time.Second

	// RequestIDHeader carries a per-call id so server logs can be matched.
	RequestIDHeader = "X-Request-ID"

	todosPath = "/todos"
	todoPath  = "/todos/{id}"
)

// Client implements service.Service over HTTP.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	log     *log.Logger
}

// New creates a client from config.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	return NewWithBaseURL(cfg.REST.BaseURL, timeout, logger)
}

// NewWithBaseURL creates a client for the API rooted at baseURL.
func NewWithBaseURL(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:    httpClient,
		timeout: timeout,
		log:     logger.WithPrefix("rest"),
	}, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(ctx).Get(todosPath)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return decodeTasks(resp.Body())
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, payload service.NewTask) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(ctx).
		SetBody(fromNewTask(payload)).
		Post(todosPath)
	if err := checkResponse(resp, err); err != nil {
		return service.Task{}, err
	}
	return decodeTask(resp.Body())
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, task service.Task) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	task.ID = id
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(fromTask(task)).
		Put(todoPath)
	if err := checkResponse(resp, err); err != nil {
		return service.Task{}, err
	}
	return decodeTask(resp.Body())
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Delete(todoPath)
	return checkResponse(resp, err)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	requestID := uuid.NewString()
	c.log.Debug("request", "request_id", requestID)
	return c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
}

// checkResponse turns transport errors and non-2xx statuses into errors.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out")
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return service.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.ErrUnauthorized
	default:
		return fmt.Errorf("unexpected status: %s", resp.Status())
	}
}
