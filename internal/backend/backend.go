// Package backend selects the remote task service named in config.
package backend

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Natatashkin/todo/internal/backend/googletasks"
	"github.com/Natatashkin/todo/internal/backend/rest"
	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/service"
)

// New creates the service for cfg.Backend.
// The Google Tasks backend requires oauth_client.json and token.json.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendREST, "":
		return rest.New(cfg, logger)
	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("oauth_client.json not found in %s: %w", cfg.Dir, service.ErrUnauthorized)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("not logged in (run: todo login): %w", service.ErrUnauthorized)
		}
		return googletasks.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
