package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/handlers"
	appmiddleware "github.com/nfrund/folio/internal/middleware"
	"github.com/nfrund/folio/internal/prompts"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/web"
)

// bodyLimit caps request bodies; export posts carry a whole document.
const bodyLimit = "4M"

// Dependencies holds the services the HTTP server is built from.
type Dependencies struct {
	Config   config.Provider
	Renderer echo.Renderer
	Pipeline handlers.Generator
	Exporter *export.Exporter
	Feed     handlers.ProgressFeed
	// Prompts, when set, is watched for template overrides while the server runs.
	Prompts *prompts.Loader
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	prompts          *prompts.Loader
	homeHandler      *handlers.HomeHandler
	portfolioHandler *handlers.PortfolioHandler
	progressHandler  *handlers.ProgressHandler
}

// New creates a new Server instance with its middleware chain configured.
// Routes are added by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Pipeline == nil {
		return nil, errors.New("server: pipeline is required")
	}
	if deps.Feed == nil {
		return nil, errors.New("server: progress feed is required")
	}
	if deps.Exporter == nil {
		deps.Exporter = export.New()
	}
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewUniversalRenderer()
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appmiddleware.FromContext(c.Request().Context()).Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))

	// Configure and use session middleware; it only carries flash notices.
	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	setupErrorHandling(e)

	return &Server{
		E:                e,
		Cfg:              deps.Config,
		prompts:          deps.Prompts,
		homeHandler:      handlers.NewHomeHandler(),
		portfolioHandler: handlers.NewPortfolioHandler(deps.Pipeline, deps.Exporter),
		progressHandler:  handlers.NewProgressHandler(deps.Feed),
	}, nil
}

// setupErrorHandling logs errors that no handler turned into an HTTP error,
// with the stack that produced them, and answers with a plain 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		appmiddleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			slog.String("error", err.Error()),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("stack_trace", string(debug.Stack())),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)), c)
	}
}
