// Package export turns a rendered portfolio into a downloadable artifact.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nfrund/folio/internal/storage"
)

// Format is an export target.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

const (
	// Filename is the name every HTML export is offered under.
	Filename = "portfolio.html"
	// MIMEType is the exact content type of an HTML export.
	MIMEType = "text/html"
)

var (
	// ErrPDFUnsupported is returned for every PDF export.
	ErrPDFUnsupported = errors.New("PDF export requires a headless browser or print renderer, which this system does not include")
	// ErrUnknownFormat is returned for formats other than html and pdf.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrEmptyDocument is returned when there is nothing to export yet.
	ErrEmptyDocument = errors.New("no portfolio has been generated yet")
)

// Artifact is an exported file.
type Artifact struct {
	Filename string
	MIMEType string
	Body     []byte
}

// Exporter builds and stores artifacts.
type Exporter struct{}

// New creates an Exporter.
func New() *Exporter {
	return &Exporter{}
}

// ParseFormat maps user input such as "HTML" or " pdf " to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export wraps html as an artifact of the given format. The HTML body is the
// input byte for byte.
func (e *Exporter) Export(html string, format Format) (Artifact, error) {
	switch format {
	case FormatHTML:
		if html == "" {
			return Artifact{}, ErrEmptyDocument
		}
		return Artifact{Filename: Filename, MIMEType: MIMEType, Body: []byte(html)}, nil
	case FormatPDF:
		return Artifact{}, ErrPDFUnsupported
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes the artifact under its filename in store and returns the
// number of bytes written.
func (e *Exporter) Save(ctx context.Context, store storage.Store, a Artifact) (int64, error) {
	n, err := store.Save(ctx, a.Filename, bytes.NewReader(a.Body))
	if err != nil {
		return n, fmt.Errorf("failed to save %s: %w", a.Filename, err)
	}
	return n, nil
}
