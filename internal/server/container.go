package server

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/generator"
	"github.com/nfrund/folio/internal/llm"
	"github.com/nfrund/folio/internal/pipeline"
	"github.com/nfrund/folio/internal/prompts"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/websocket"
	"github.com/samber/do/v2"
)

// NewInjector registers every application service. Services are built
// lazily on first use, so the CLI only pays for what it invokes.
func NewInjector(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, providePrompts)
	do.Provide(i, provideLLMClient)
	do.Provide(i, provideBus)
	do.Provide(i, provideContentGenerator)
	do.Provide(i, provideDesignGenerator)
	do.Provide(i, providePipeline)
	do.Provide(i, provideExporter)
	do.Provide(i, provideProgressFeed)
	do.Provide(i, provideRenderer)

	return i
}

// NewFromInjector builds the server from the services registered by NewInjector.
func NewFromInjector(i do.Injector) (*Server, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return nil, err
	}
	p, err := do.Invoke[*pipeline.Pipeline](i)
	if err != nil {
		return nil, err
	}
	feed, err := do.Invoke[*websocket.ProgressFeed](i)
	if err != nil {
		return nil, err
	}
	loader, err := do.Invoke[*prompts.Loader](i)
	if err != nil {
		return nil, err
	}

	return New(Dependencies{
		Config:   cfg,
		Renderer: do.MustInvoke[*rendering.UniversalRenderer](i),
		Pipeline: p,
		Exporter: do.MustInvoke[*export.Exporter](i),
		Feed:     feed,
		Prompts:  loader,
	})
}

func providePrompts(i do.Injector) (*prompts.Loader, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return prompts.NewLoader(cfg.GetPromptsDir())
}

func provideLLMClient(i do.Injector) (llm.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	client, err := llm.NewClient(llm.Options{
		Provider:      cfg.GetAIProvider(),
		OpenAIBaseURL: cfg.GetOpenAIBaseURL(),
		GeminiModel:   cfg.GetGeminiModel(),
		Timeout:       cfg.GetAITimeout(),
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Generative service client ready", "provider", cfg.GetAIProvider())
	return client, nil
}

func provideBus(do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(), nil
}

func provideContentGenerator(i do.Injector) (*generator.ContentGenerator, error) {
	return generator.NewContentGenerator(
		do.MustInvoke[llm.Client](i),
		do.MustInvoke[*prompts.Loader](i),
	), nil
}

func provideDesignGenerator(i do.Injector) (*generator.DesignGenerator, error) {
	return generator.NewDesignGenerator(
		do.MustInvoke[llm.Client](i),
		do.MustInvoke[*prompts.Loader](i),
	), nil
}

func providePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	return pipeline.New(
		do.MustInvoke[*generator.ContentGenerator](i),
		do.MustInvoke[*generator.DesignGenerator](i),
		do.MustInvoke[*pubsub.WatermillBridge](i),
	), nil
}

func provideExporter(do.Injector) (*export.Exporter, error) {
	return export.New(), nil
}

// provideProgressFeed allows WebSocket connections from the configured
// public host in addition to the request's own host.
func provideProgressFeed(i do.Injector) (*websocket.ProgressFeed, error) {
	cfg := do.MustInvoke[config.Provider](i)
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)

	var origins []string
	if base := cfg.GetAppBaseURL(); base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_BASE_URL %q: %w", base, err)
		}
		if u.Host != "" {
			origins = append(origins, u.Host)
		}
	}
	return websocket.NewProgressFeed(bus, origins...), nil
}

func provideRenderer(do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}
