package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/store"
)

func init() {
	Register(&DoneCmd{})
	Register(&ReopenCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "todo done <ref>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, true, args, out, errOut)
}

// ReopenCmd implements the reopen command.
type ReopenCmd struct{}

func (c *ReopenCmd) Name() string       { return "reopen" }
func (c *ReopenCmd) Aliases() []string  { return []string{"undone"} }
func (c *ReopenCmd) Synopsis() string   { return "Mark a task open again" }
func (c *ReopenCmd) Usage() string      { return "todo reopen <ref>" }
func (c *ReopenCmd) NeedsService() bool { return true }

func (c *ReopenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReopenCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, false, args, out, errOut)
}

// runSetCompleted is the shared implementation for done and reopen.
func runSetCompleted(ctx context.Context, cfg *config.Config, svc service.Service, completed bool, args []string, out, errOut io.Writer) int {
	if _, err := ParseTaskRef(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess, code := openSession(ctx, cfg, svc, errOut)
	if sess == nil {
		return code
	}

	task, err := resolveTask(sess, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := sess.ctrl.SubmitStatusChange(ctx, task.ID, store.Patch{Completed: &completed}); err != nil {
		return reportError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
