package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todo help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                               List tasks, open first
  todo list [common flags] [--filter <text>] [--format text|json|yaml]
  todo add [common flags] <title...>
  todo edit [common flags] <ref> <title...>
  todo done [common flags] <ref>
  todo reopen [common flags] <ref>
  todo rm [common flags] <ref>
  todo dash [common flags]                           Interactive dashboard
  todo serve [common flags] [--addr <host:port>] [--empty]
  todo login [common flags]                          Google Tasks backend only
  todo logout [common flags]
  todo help
  todo version

A <ref> is the number shown by 'todo list' or @<id>.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TODO_BACKEND, TODO_BASE_URL, TODO_OWNER_ID, TODO_LIST_ID,
  TODO_TIMEOUT, TODO_LOG_LEVEL, TODO_LOG_FORMAT
`
