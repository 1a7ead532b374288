package export

import (
	"context"
	"testing"

	"github.com/nfrund/folio/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "<!doctype html>\n<html lang=\"en\">\r\n<body><h1>Ada &amp; Co — ünïcode</h1>\n</body></html>\n"

func TestExport_HTMLIsByteIdentical(t *testing.T) {
	a, err := New().Export(page, FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, "portfolio.html", a.Filename)
	assert.Equal(t, "text/html", a.MIMEType)
	assert.Equal(t, []byte(page), a.Body)
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		format  Format
		wantErr error
	}{
		{"pdf", page, FormatPDF, ErrPDFUnsupported},
		{"pdf without document", "", FormatPDF, ErrPDFUnsupported},
		{"docx", page, Format("docx"), ErrUnknownFormat},
		{"empty document", "", FormatHTML, ErrEmptyDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New().Export(tt.html, tt.format)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, a.Body)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"html": FormatHTML, " HTML ": FormatHTML, "Pdf": FormatPDF} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("png")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExporter_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	e := New()

	a, err := e.Export(page, FormatHTML)
	require.NoError(t, err)

	n, err := e.Save(context.Background(), storage.NewAferoStore(fs), a)
	require.NoError(t, err)
	assert.Equal(t, int64(len(page)), n)

	data, err := afero.ReadFile(fs, "portfolio.html")
	require.NoError(t, err)
	assert.Equal(t, page, string(data))
}
