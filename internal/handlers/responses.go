package handlers

import (
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/pipeline"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidInput      = "invalid_input"
	CodeInvalidRequest    = "invalid_request"
	CodeInProgress        = "generation_in_progress"
	CodeGenerationFailed  = "generation_failed"
	CodeUnsupportedFormat = "unsupported_format"
	CodeNothingToExport   = "nothing_to_export"
	CodeUnknownFormat     = "unknown_format"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// PortfolioResponse is the DTO for a rendered portfolio.
type PortfolioResponse struct {
	ID            string         `json:"id"`
	State         pipeline.State `json:"state"`
	ContentSource domain.Source  `json:"content_source"`
	DesignSource  domain.Source  `json:"design_source"`
	Content       domain.Content `json:"content"`
	HTML          string         `json:"html"`
}

// NewPortfolioResponse maps a pipeline result to the response DTO.
func NewPortfolioResponse(res *pipeline.Result) *PortfolioResponse {
	return &PortfolioResponse{
		ID:            res.ID,
		State:         res.State,
		ContentSource: res.ContentSource,
		DesignSource:  res.DesignSource,
		Content:       res.Content,
		HTML:          res.HTML,
	}
}
