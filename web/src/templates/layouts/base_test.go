package layouts

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/nfrund/folio/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func TestCalculateTitle(t *testing.T) {
	assert.Equal(t, "Folio", CalculateTitle(""))
	assert.Equal(t, "About - Folio", CalculateTitle("About"))
}

func TestBase(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Base("About", view.FlashData{Error: []string{"Nope"}}, g.P(g.ID("body"), cmp.Text("hi"))).Render(&buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "About - Folio", doc.Find("title").Text())
	assert.Equal(t, "hi", doc.Find("main #body").Text())
	assert.Contains(t, doc.Find("main #flash").Text(), "Nope")
	assert.Equal(t, 1, doc.Find(`script[src="/static/app.js"]`).Length())
	assert.Equal(t, 1, doc.Find(`link[href="/static/app.css"]`).Length())
}
