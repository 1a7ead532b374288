package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Style selects the visual flavour of the generated page.
type Style string

const (
	StyleModern   Style = "modern"
	StyleClassic  Style = "classic"
	StyleMinimal  Style = "minimal"
	StyleCreative Style = "creative"
)

// Styles lists the selectable styles in display order.
var Styles = []Style{StyleModern, StyleClassic, StyleMinimal, StyleCreative}

const (
	DefaultStyle = StyleModern
	DefaultColor = "#4f46e5"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// init registers custom validation functions with the validator instance.
func init() {
	_ = validatorInstance.RegisterValidation("rgbhex", validateRGBHex)
}

// validateRGBHex accepts #rgb and #rrggbb colors.
func validateRGBHex(fl validator.FieldLevel) bool {
	_, err := ParseHexColor(fl.Field().String())
	return err == nil
}

// UserInput is the résumé-like data collected from the form. It is created
// when the user submits and discarded once the page has been rendered.
type UserInput struct {
	Name       string   `json:"name" validate:"required"`
	Profession string   `json:"profession" validate:"required"`
	Skills     []string `json:"skills" validate:"min=1,dive,required"`
	Experience string   `json:"experience" validate:"required"`
	Projects   []string `json:"projects" validate:"min=1,dive,required"`
	Education  string   `json:"education" validate:"required"`
	Style      Style    `json:"style" validate:"required,oneof=modern classic minimal creative"`
	Color      string   `json:"color" validate:"required,rgbhex"`

	// APIKey authorizes the generative service call. It is never serialized.
	APIKey string `json:"-"`
}

// Normalize trims every field, drops empty list entries and fills in the
// default style and color.
func (in UserInput) Normalize() UserInput {
	out := UserInput{
		Name:       strings.TrimSpace(in.Name),
		Profession: strings.TrimSpace(in.Profession),
		Skills:     compact(in.Skills),
		Experience: strings.TrimSpace(in.Experience),
		Projects:   compact(in.Projects),
		Education:  strings.TrimSpace(in.Education),
		Style:      Style(strings.ToLower(strings.TrimSpace(string(in.Style)))),
		Color:      strings.ToLower(strings.TrimSpace(in.Color)),
		APIKey:     strings.TrimSpace(in.APIKey),
	}
	if out.Style == "" {
		out.Style = DefaultStyle
	}
	if out.Color == "" {
		out.Color = DefaultColor
	}
	return out
}

// Validate checks the required-field invariants. It returns
// validator.ValidationErrors on failure.
func (in UserInput) Validate() error {
	return validatorInstance.Struct(in)
}

// HasAPIKey reports whether a credential was supplied.
func (in UserInput) HasAPIKey() bool {
	return in.APIKey != ""
}

// SplitList splits a comma-separated form value into trimmed, non-empty entries.
func SplitList(raw string) []string {
	return compact(strings.Split(raw, ","))
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
