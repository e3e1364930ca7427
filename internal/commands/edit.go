package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task title" }
func (c *EditCmd) Usage() string      { return "todo edit <ref> <title...>" }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if _, err := ParseTaskRef(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
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

	sess.ctrl.ToggleCreateOrEdit(&task)
	if err := sess.ctrl.SubmitTitle(ctx, title); err != nil {
		return reportError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
