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

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "todo version [--verbose]" }
func (c *VersionCmd) NeedsService() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "also print the configured backend")
	fs.BoolVar(&c.verbose, "v", false, "also print the configured backend")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todo %s\n", Version)
	if !c.verbose {
		return exitcode.Success
	}

	fmt.Fprintf(out, "config:  %s\n", cfg.ConfigPath())
	fmt.Fprintf(out, "backend: %s\n", cfg.Backend)
	switch cfg.Backend {
	case config.BackendGoogleTasks:
		fmt.Fprintf(out, "list:    %s\n", cfg.GoogleTasks.ListID)
	default:
		fmt.Fprintf(out, "url:     %s\n", cfg.REST.BaseURL)
	}
	return exitcode.Success
}
