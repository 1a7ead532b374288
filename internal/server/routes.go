package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/nfrund/folio/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	// Form and API generations share one per-IP budget.
	rateLimiter := middleware.RateLimiter(s.Cfg.GetRateLimit())

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET("/about", handlers.AboutGet)

	portfolio := s.E.Group("/portfolio")
	portfolio.POST("/generate", s.portfolioHandler.Generate, rateLimiter)
	portfolio.POST("/export", s.portfolioHandler.Export)
	portfolio.GET("/progress", s.progressHandler.Stream)

	api := s.E.Group("/api/v1")
	api.POST("/portfolio", s.portfolioHandler.CreateAPI, rateLimiter)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
