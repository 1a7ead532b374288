package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/websocket"
)

// ProgressFeed streams generation events over a WebSocket.
type ProgressFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, clientID string) error
}

// ProgressHandler serves GET /portfolio/progress.
type ProgressHandler struct {
	feed ProgressFeed
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(feed ProgressFeed) *ProgressHandler {
	return &ProgressHandler{feed: feed}
}

// Stream upgrades the connection and forwards events for ?client=ID until
// the browser goes away.
func (h *ProgressHandler) Stream(c echo.Context) error {
	err := h.feed.Serve(c.Response(), c.Request(), c.QueryParam("client"))
	if errors.Is(err, websocket.ErrMissingClientID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Message: err.Error()})
	}
	return err
}
