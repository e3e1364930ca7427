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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "todo add <title...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	sess, code := openSession(ctx, cfg, svc, errOut)
	if sess == nil {
		return code
	}

	sess.ctrl.ToggleCreateOrEdit(nil)
	if err := sess.ctrl.SubmitTitle(ctx, title); err != nil {
		return reportError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
