package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the folio command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Generate portfolio websites from a few facts about you",
		Long: `Folio turns a name, a profession, skills and projects into a complete,
styled single-page portfolio website.

With an API key the copy and the page are written by a generative text
service; without one, or when the service fails, a built-in template is used.

Available commands:
  serve       Run the web interface
  generate    Generate a portfolio from flags and write portfolio.html
  version     Print the version

Use "folio [command] --help" for more information about a command.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newGenerateCmd(), newVersionCmd())
	return root
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
