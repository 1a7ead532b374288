package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderClientID carries the browser tab's client ID on htmx requests. The
// progress socket sends it as the "client" query parameter instead.
const HeaderClientID = "X-Client-Id"

type contextKey string

const loggerKey = contextKey("logger")

// Logger attaches a logger tagged with the request ID, and the client ID
// when the request names one, to the request context. It must run after
// Echo's RequestID middleware.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := slog.Default().With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		if id := clientID(c); id != "" {
			logger = logger.With("client_id", id)
		}

		ctx := context.WithValue(c.Request().Context(), loggerKey, logger)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func clientID(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderClientID); id != "" {
		return id
	}
	return c.QueryParam("client")
}

// FromContext returns the request logger, or the default logger outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
