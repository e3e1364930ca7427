package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/controller"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/logging"
	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/store"
)

// session wires a store and controller over the backend for one command.
type session struct {
	store *store.Store
	ctrl  *controller.Controller
	log   *log.Logger
}

func newLogger(cfg *config.Config, errOut io.Writer) *log.Logger {
	return logging.NewFromConfig(errOut, cfg.Log.Level, cfg.Log.Format, cfg.Debug)
}

func newSession(cfg *config.Config, svc service.Service, errOut io.Writer) *session {
	logger := newLogger(cfg, errOut)
	s := store.New(svc, cfg.OwnerID, logger)
	return &session{
		store: s,
		ctrl:  controller.New(s, logger),
		log:   logger,
	}
}

// openSession creates a session and performs the initial load.
// On failure the error is reported and a non-zero exit code returned.
func openSession(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) (*session, int) {
	sess := newSession(cfg, svc, errOut)
	if err := sess.ctrl.Start(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return sess, exitcode.Success
}

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, store.ErrEmptyTitle):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
