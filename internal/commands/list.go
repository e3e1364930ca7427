package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/output"
	"github.com/Natatashkin/todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	filter string
	format string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todo list [--filter <text>] [--format text|json|yaml]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	sess, code := openSession(ctx, cfg, svc, errOut)
	if sess == nil {
		return code
	}

	// Numbers always refer to the unfiltered order so they stay valid refs.
	all := sess.ctrl.View()
	nums := make(map[string]int, len(all.Tasks))
	for i, task := range all.Tasks {
		nums[task.ID] = i + 1
	}

	sess.ctrl.SetFilterText(c.filter)
	res := sess.ctrl.View()

	items := make([]output.Item, 0, len(res.Tasks))
	for _, task := range res.Tasks {
		items = append(items, output.Item{Num: nums[task.ID], Task: task})
	}

	if err := output.Render(out, format, items); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if format == output.FormatText && !cfg.Quiet {
		if len(items) == 0 {
			fmt.Fprintln(out, "no tasks found")
		} else {
			output.FormatSummary(out, res.Open, res.Completed)
		}
	}
	return exitcode.Success
}
