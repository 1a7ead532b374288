package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/view"
	"github.com/nfrund/folio/web/src/templates/layouts"
	"github.com/nfrund/folio/web/src/templates/pages"
)

// HomeHandler handles requests for the generator page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet renders the generator form. Every page load gets a fresh client ID
// tying the tab's progress feed to the generations it starts.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	page := pages.Home(pages.HomeProps{ClientID: uuid.NewString()})
	return c.Render(http.StatusOK, "", layouts.Base("Portfolio Generator", view.GetFlashData(c), page))
}
