package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Natatashkin/todo/internal/backend"
	"github.com/Natatashkin/todo/internal/backend/rest"
	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/service"
)

func TestNew_REST(t *testing.T) {
	cfg, _ := config.New(t.TempDir())

	svc, err := backend.New(context.Background(), cfg, nil)

	require.NoError(t, err)
	assert.IsType(t, &rest.Client{}, svc)
}

func TestNew_GoogleTasksRequiresCredentials(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Backend = config.BackendGoogleTasks

	_, err := backend.New(context.Background(), cfg, nil)

	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Contains(t, err.Error(), "oauth_client.json not found")
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Backend = "carrier-pigeon"

	_, err := backend.New(context.Background(), cfg, nil)

	assert.EqualError(t, err, "unknown backend: carrier-pigeon")
}
