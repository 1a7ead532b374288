package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/logging"
	"github.com/nfrund/folio/internal/pipeline"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/nfrund/folio/internal/server"
	"github.com/nfrund/folio/internal/storage"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// apiKeyEnv supplies --api-key when the flag is not given.
const apiKeyEnv = "FOLIO_API_KEY"

type generateOptions struct {
	name       string
	profession string
	skills     string
	experience string
	projects   string
	education  string
	style      string
	color      string
	apiKey     string
	out        string
	format     string
	markdown   bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a portfolio and write portfolio.html",
		Long: `Generate a portfolio from flags and export it into the output directory.

Progress is printed as the generation moves through its states. Without an
API key (--api-key or FOLIO_API_KEY) the built-in template is used.

Examples:
  folio generate --name "Ada Lovelace" --profession Engineer \
    --skills "Go, SQL" --experience 5 --projects "Billing, Search" \
    --education "BSc Computer Science" --out ./site

  # Also print the generated copy as markdown
  folio generate ... --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "full name")
	f.StringVar(&opts.profession, "profession", "", "profession or job title")
	f.StringVar(&opts.skills, "skills", "", "comma-separated skills")
	f.StringVar(&opts.experience, "experience", "", "years of experience")
	f.StringVar(&opts.projects, "projects", "", "comma-separated projects")
	f.StringVar(&opts.education, "education", "", "education")
	f.StringVar(&opts.style, "style", string(domain.DefaultStyle), "page style: modern, classic, minimal or creative")
	f.StringVar(&opts.color, "color", domain.DefaultColor, "primary color as #rrggbb")
	f.StringVar(&opts.apiKey, "api-key", "", "generative service API key (default $"+apiKeyEnv+")")
	f.StringVar(&opts.out, "out", ".", "directory to write the export into")
	f.StringVar(&opts.format, "format", string(export.FormatHTML), "export format: html or pdf")
	f.BoolVar(&opts.markdown, "markdown", false, "print the generated copy as markdown")

	return cmd
}

func (o *generateOptions) input() domain.UserInput {
	key := o.apiKey
	if key == "" {
		key = os.Getenv(apiKeyEnv)
	}
	return domain.UserInput{
		Name:       o.name,
		Profession: o.profession,
		Skills:     domain.SplitList(o.skills),
		Experience: o.experience,
		Projects:   domain.SplitList(o.projects),
		Education:  o.education,
		Style:      domain.Style(o.style),
		Color:      o.color,
		APIKey:     key,
	}
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	logging.NewWithWriter(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), logLevel())

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == export.FormatPDF {
		return export.ErrPDFUnsupported
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := storage.NewDirStore(opts.out)
	if err != nil {
		return err
	}

	injector := server.NewInjector(cfg)
	defer injector.Shutdown()

	p, err := do.Invoke[*pipeline.Pipeline](injector)
	if err != nil {
		return err
	}
	bus := do.MustInvoke[*pubsub.WatermillBridge](injector)
	exporter := do.MustInvoke[*export.Exporter](injector)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	clientID := "cli-" + uuid.NewString()
	if err := pubsub.Subscribe(ctx, bus, pipeline.TopicStateChanged, progressPrinter(out, clientID)); err != nil {
		return fmt.Errorf("failed to follow progress: %w", err)
	}

	res, err := p.Run(ctx, clientID, opts.input())
	if err != nil {
		return err
	}
	if res.ContentErr != nil && res.ContentSource == domain.SourceFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using the built-in copy: %v\n", res.ContentErr)
	}
	if res.DesignErr != nil && res.DesignSource == domain.SourceFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using the built-in design: %v\n", res.DesignErr)
	}

	artifact, err := exporter.Export(res.HTML, format)
	if err != nil {
		return err
	}
	n, err := exporter.Save(ctx, store, artifact)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d bytes) to %s\n", artifact.Filename, n, opts.out)

	if opts.markdown {
		fmt.Fprintln(out)
		fmt.Fprint(out, res.Content.Markdown())
	}
	return nil
}

// progressPrinter prints this run's state changes. The bus delivers them
// synchronously, so lines never interleave with the command's own output.
func progressPrinter(w io.Writer, clientID string) func(context.Context, pubsub.Message, pipeline.StateChanged) error {
	return func(_ context.Context, msg pubsub.Message, e pipeline.StateChanged) error {
		if msg.ClientID != clientID {
			return nil
		}
		line := fmt.Sprintf("[%3d%%] %s", e.Progress, e.State)
		if e.Message != "" {
			line += ": " + e.Message
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}
}

// logLevel keeps the CLI quiet unless LOG_LEVEL asks otherwise.
func logLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "warn"
}
