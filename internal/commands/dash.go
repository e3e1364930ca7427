package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/tui"
)

func init() {
	Register(&DashCmd{})
}

// DashCmd implements the dash command.
type DashCmd struct{}

func (c *DashCmd) Name() string       { return "dash" }
func (c *DashCmd) Aliases() []string  { return []string{"ui"} }
func (c *DashCmd) Synopsis() string   { return "Open the interactive dashboard" }
func (c *DashCmd) Usage() string      { return "todo dash" }
func (c *DashCmd) NeedsService() bool { return true }

func (c *DashCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !tui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: dash requires a terminal")
		return exitcode.UserError
	}

	// Logs would corrupt the alternate screen.
	sess := newSession(cfg, svc, io.Discard)
	if err := tui.Run(ctx, sess.ctrl); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

