package cmd

import (
	"log/slog"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/logging"
	"github.com/nfrund/folio/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Start the HTTP server with the generator form, the JSON API and the
progress feed. The server stops gracefully on SIGINT or SIGTERM.

Configuration is read from .env and the environment (FOLIO_ADDR,
FOLIO_AI_PROVIDER, FOLIO_RATE_LIMIT, ...).`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.New()

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}

	injector := server.NewInjector(cfg)
	defer func() {
		if report := injector.Shutdown(); report != nil && len(report.Errors) > 0 {
			slog.Error("Service shutdown reported errors", "error", report.Error())
		}
	}()

	s, err := server.NewFromInjector(injector)
	if err != nil {
		return err
	}
	s.RegisterRoutes()

	return s.Start(cmd.Context())
}
