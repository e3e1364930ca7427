// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Natatashkin/todo/internal/backend"
	"github.com/Natatashkin/todo/internal/cli"
	"github.com/Natatashkin/todo/internal/commands"
	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/logging"
	"github.com/Natatashkin/todo/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		logger := logging.NewFromConfig(os.Stderr, cfg.Log.Level, cfg.Log.Format, cfg.Debug)
		return backend.New(ctx, cfg, logger)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
