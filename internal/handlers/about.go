package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/view"
	"github.com/nfrund/folio/web/src/templates/layouts"
	"github.com/nfrund/folio/web/src/templates/pages"
)

// AboutGet is a handler function that renders the about page.
func AboutGet(c echo.Context) error {
	return c.Render(http.StatusOK, "", layouts.Base("About", view.GetFlashData(c), pages.AboutContent()))
}
