package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/middleware"
	"github.com/nfrund/folio/internal/pipeline"
	"github.com/nfrund/folio/internal/view"
	"github.com/nfrund/folio/web/src/templates/layouts"
	"github.com/nfrund/folio/web/src/templates/pages"
	"github.com/nfrund/folio/web/src/templates/partials"
)

const (
	msgInProgress   = "A portfolio is already being generated. Please wait for it to finish."
	msgTooLong      = "One or more fields are too long."
	msgBadRequest   = "Invalid request format."
	headerAPIKey    = "X-API-Key"
	headerHXRequest = "HX-Request"
)

// Generator runs one portfolio generation.
type Generator interface {
	Run(ctx context.Context, clientID string, in domain.UserInput) (*pipeline.Result, error)
}

// PortfolioHandler serves generation and export.
type PortfolioHandler struct {
	generator Generator
	exporter  *export.Exporter
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(generator Generator, exporter *export.Exporter) *PortfolioHandler {
	return &PortfolioHandler{generator: generator, exporter: exporter}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}

func renderNotice(c echo.Context, status int, kind partials.NoticeKind, message string) error {
	return c.Render(status, "", partials.Notice(kind, message))
}

// Generate handles POST /portfolio/generate. htmx requests get the result
// fragment; plain form posts get the whole page.
func (h *PortfolioHandler) Generate(c echo.Context) error {
	ctx := c.Request().Context()

	var form GenerateForm
	if err := c.Bind(&form); err != nil {
		return h.rejectForm(c, http.StatusBadRequest, partials.NoticeError, msgBadRequest)
	}
	if err := c.Validate(&form); err != nil {
		return h.rejectForm(c, http.StatusBadRequest, partials.NoticeError, msgTooLong)
	}

	res, err := h.generator.Run(ctx, form.ClientID, form.Input())
	if err != nil {
		var verr *pipeline.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.rejectForm(c, http.StatusBadRequest, partials.NoticeError, pipeline.MsgInvalid)
		case errors.Is(err, pipeline.ErrGenerationInProgress):
			return h.rejectForm(c, http.StatusConflict, partials.NoticeInfo, msgInProgress)
		default:
			middleware.FromContext(ctx).Error("Portfolio generation failed", slog.String("error", err.Error()))
			return h.rejectForm(c, http.StatusInternalServerError, partials.NoticeError, pipeline.MsgFailed)
		}
	}

	result := partials.Result(partials.ResultProps{
		GenerationID:  res.ID,
		HTML:          res.HTML,
		ContentSource: res.ContentSource,
		DesignSource:  res.DesignSource,
	})
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", result)
	}

	page := pages.Home(pages.HomeProps{ClientID: res.ClientID, Form: form.Values(), Result: result})
	return c.Render(http.StatusOK, "", layouts.Base("Your Portfolio", view.FlashData{}, page))
}

// rejectForm answers an htmx request with a notice fragment and a plain
// form post with a flash message and a redirect back to the form.
func (h *PortfolioHandler) rejectForm(c echo.Context, status int, kind partials.NoticeKind, message string) error {
	if isHTMX(c) {
		return renderNotice(c, status, kind, message)
	}
	view.SetFlashError(c, message)
	return c.Redirect(http.StatusSeeOther, "/")
}

// CreateAPI handles POST /api/v1/portfolio.
func (h *PortfolioHandler) CreateAPI(c echo.Context) error {
	ctx := c.Request().Context()

	var req PortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Message: msgBadRequest})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Message: msgTooLong})
	}
	if req.APIKey == "" {
		req.APIKey = c.Request().Header.Get(headerAPIKey)
	}

	res, err := h.generator.Run(ctx, req.ClientID, req.Input())
	if err != nil {
		var verr *pipeline.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidInput, Message: verr.Error(), Fields: verr.Fields})
		case errors.Is(err, pipeline.ErrGenerationInProgress):
			return c.JSON(http.StatusConflict, ErrorResponse{Code: CodeInProgress, Message: err.Error()})
		default:
			middleware.FromContext(ctx).Error("Portfolio generation failed", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: CodeGenerationFailed, Message: pipeline.MsgFailed})
		}
	}

	return c.JSON(http.StatusOK, NewPortfolioResponse(res))
}

// Export handles POST /portfolio/export. An HTML export is returned as an
// attachment whose body is the submitted document byte for byte.
func (h *PortfolioHandler) Export(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return exportError(c, http.StatusBadRequest, CodeInvalidRequest, msgBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return exportError(c, http.StatusBadRequest, CodeUnknownFormat, export.ErrUnknownFormat.Error())
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return exportError(c, http.StatusBadRequest, CodeUnknownFormat, err.Error())
	}
	doc, err := req.Document()
	if err != nil {
		return exportError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	}

	artifact, err := h.exporter.Export(doc, format)
	switch {
	case errors.Is(err, export.ErrPDFUnsupported):
		return exportError(c, http.StatusNotImplemented, CodeUnsupportedFormat, err.Error())
	case errors.Is(err, export.ErrEmptyDocument):
		return exportError(c, http.StatusBadRequest, CodeNothingToExport, err.Error())
	case err != nil:
		return exportError(c, http.StatusBadRequest, CodeUnknownFormat, err.Error())
	}

	middleware.FromContext(c.Request().Context()).Info("Portfolio exported",
		slog.String("format", string(format)), slog.Int("bytes", len(artifact.Body)))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return c.Blob(http.StatusOK, artifact.MIMEType, artifact.Body)
}

func exportError(c echo.Context, status int, code, message string) error {
	if isHTMX(c) {
		kind := partials.NoticeError
		if status == http.StatusNotImplemented {
			kind = partials.NoticeInfo
		}
		return renderNotice(c, status, kind, message)
	}
	return c.JSON(status, ErrorResponse{Code: code, Message: message})
}
