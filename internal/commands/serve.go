package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Natatashkin/todo/internal/config"
	"github.com/Natatashkin/todo/internal/exitcode"
	"github.com/Natatashkin/todo/internal/mockapi"
	"github.com/Natatashkin/todo/internal/service"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr  string
	empty bool
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Run the mock task API" }
func (c *ServeCmd) Usage() string      { return "todo serve [--addr <host:port>] [--empty]" }
func (c *ServeCmd) NeedsService() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", ":8080", "")
	fs.BoolVar(&c.empty, "empty", false, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var seed []mockapi.Todo
	if !c.empty {
		seed = mockapi.SampleTodos()
	}

	server := mockapi.New(newLogger(cfg, errOut), seed...)
	if !cfg.Quiet {
		fmt.Fprintf(out, "serving /todos on %s\n", c.addr)
	}
	if err := server.Run(ctx, c.addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
