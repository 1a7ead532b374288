package pipeline

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/folio/internal/domain"
)

// ErrGenerationInProgress is returned when a client starts a second
// generation before the first one finished.
var ErrGenerationInProgress = errors.New("a portfolio generation is already running for this client")

// ValidationError reports the input fields that failed validation. It
// matches domain.ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields []string
	Err    error
}

func newValidationError(err error) *ValidationError {
	ve := &ValidationError{Err: err}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			ve.Fields = append(ve.Fields, strings.ToLower(fe.Field()))
		}
	}
	return ve
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return domain.ErrInvalidInput.Error()
	}
	return domain.ErrInvalidInput.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() []error {
	return []error{domain.ErrInvalidInput, e.Err}
}
