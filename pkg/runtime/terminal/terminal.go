package terminal

import (
	"io"
	"os"

	"github.com/seo-tools/traffic-atlas/pkg/runtime/terminal/commands"
	"github.com/seo-tools/traffic-atlas/pkg/runtime/terminal/export"

	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry collect.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry collect.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traffic-atlas",
		Short: "Organic traffic comparison tool for GA4 properties",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewValidateCmd())
	cmd.AddCommand(commands.NewPropertiesCmd())

	return cmd
}
