package handlers

import (
	"encoding/base64"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/web/src/templates/pages"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// GenerateForm is the DTO for the generator form. Only size limits are
// checked here; required fields are the pipeline's job so the form and the
// API report them the same way.
type GenerateForm struct {
	ClientID   string `form:"client_id" validate:"max=64"`
	Name       string `form:"name" validate:"max=200"`
	Profession string `form:"profession" validate:"max=200"`
	Skills     string `form:"skills" validate:"max=2000"`
	Experience string `form:"experience" validate:"max=200"`
	Projects   string `form:"projects" validate:"max=4000"`
	Education  string `form:"education" validate:"max=500"`
	Style      string `form:"style" validate:"max=20"`
	Color      string `form:"color" validate:"max=7"`
	APIKey     string `form:"api_key" validate:"max=512"`
}

// Input converts the form into pipeline input, splitting the comma-separated lists.
func (f GenerateForm) Input() domain.UserInput {
	return domain.UserInput{
		Name:       f.Name,
		Profession: f.Profession,
		Skills:     domain.SplitList(f.Skills),
		Experience: f.Experience,
		Projects:   domain.SplitList(f.Projects),
		Education:  f.Education,
		Style:      domain.Style(f.Style),
		Color:      f.Color,
		APIKey:     f.APIKey,
	}
}

// Values returns the form contents for re-rendering the page. The API key
// is never echoed back.
func (f GenerateForm) Values() pages.FormValues {
	return pages.FormValues{
		Name:       f.Name,
		Profession: f.Profession,
		Skills:     f.Skills,
		Experience: f.Experience,
		Projects:   f.Projects,
		Education:  f.Education,
		Style:      domain.Style(f.Style),
		Color:      f.Color,
	}
}

// PortfolioRequest is the DTO for POST /api/v1/portfolio.
type PortfolioRequest struct {
	ClientID   string   `json:"client_id" validate:"max=64"`
	Name       string   `json:"name" validate:"max=200"`
	Profession string   `json:"profession" validate:"max=200"`
	Skills     []string `json:"skills" validate:"max=50,dive,max=200"`
	Experience string   `json:"experience" validate:"max=200"`
	Projects   []string `json:"projects" validate:"max=50,dive,max=400"`
	Education  string   `json:"education" validate:"max=500"`
	Style      string   `json:"style" validate:"max=20"`
	Color      string   `json:"color" validate:"max=7"`
	APIKey     string   `json:"api_key" validate:"max=512"`
}

// Input converts the request into pipeline input.
func (r PortfolioRequest) Input() domain.UserInput {
	return domain.UserInput{
		Name:       r.Name,
		Profession: r.Profession,
		Skills:     r.Skills,
		Experience: r.Experience,
		Projects:   r.Projects,
		Education:  r.Education,
		Style:      domain.Style(r.Style),
		Color:      r.Color,
		APIKey:     r.APIKey,
	}
}

// ExportRequest is the DTO for POST /portfolio/export. The document is sent
// either as is or base64-encoded; HTMLBase64 wins when both are set.
type ExportRequest struct {
	Format     string `form:"format" json:"format" validate:"required,max=10"`
	HTML       string `form:"html" json:"html"`
	HTMLBase64 string `form:"html_b64" json:"html_b64"`
}

// Document returns the HTML to export.
func (r ExportRequest) Document() (string, error) {
	if r.HTMLBase64 == "" {
		return r.HTML, nil
	}
	raw, err := base64.StdEncoding.DecodeString(r.HTMLBase64)
	if err != nil {
		return "", fmt.Errorf("invalid html_b64: %w", err)
	}
	return string(raw), nil
}
