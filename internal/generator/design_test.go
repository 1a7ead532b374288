package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2031, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFallbackDesign(t *testing.T) {
	in := sampleInput()
	html, err := FallbackDesign(in, FallbackContent(in), 2031)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"), "document starts with a doctype")

	doc := parseDoc(t, html)
	assert.Equal(t, "Ada Lovelace | Software Engineer", doc.Find("title").Text())
	assert.Equal(t, "Ada Lovelace", doc.Find("h1").Text())
	assert.Equal(t, "Software Engineer specializing in Go, SQL, Kubernetes", doc.Find(".hero p").Text())
	assert.Equal(t, len(in.Skills), doc.Find(".skill-card").Length())
	assert.Equal(t, len(in.Projects), doc.Find(".project-card").Length())
	assert.Equal(t, 3, doc.Find("#about p").Length())
	assert.Equal(t, "Developed a billing platform using Go and SQL", doc.Find(".project-card .project-info p").First().Text())
	assert.Contains(t, doc.Find("#contact").Text(), "Email: ada.lovelace@example.com")
	assert.Contains(t, doc.Find("footer").Text(), "© 2031 Ada Lovelace. All rights reserved.")

	css := doc.Find("style").Text()
	assert.Contains(t, css, "--primary-color: #4f46e5;")
	assert.Contains(t, css, "--secondary-color: #3f38b7;")
	assert.Contains(t, css, "--font-family: 'Arial', sans-serif;")
}

func TestFallbackDesign_EscapesUserText(t *testing.T) {
	in := sampleInput()
	in.Name = `<script>alert("x")</script>`
	in.Skills = []string{"<b>Go</b>"}

	html, err := FallbackDesign(in, FallbackContent(in), 2031)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>Go</b>")
	doc := parseDoc(t, html)
	assert.Equal(t, in.Name, doc.Find("h1").Text())
	assert.Equal(t, "<b>Go</b>", doc.Find(".skill-card h3").Text())
}

func TestFallbackDesign_StyleVariables(t *testing.T) {
	for _, style := range domain.Styles {
		t.Run(string(style), func(t *testing.T) {
			in := sampleInput()
			in.Style = style
			html, err := FallbackDesign(in, FallbackContent(in), 2031)
			require.NoError(t, err)
			assert.Contains(t, html, "--font-family: "+styleTable[style].Font+";")
			assert.Contains(t, html, "--radius: "+styleTable[style].Radius+";")
		})
	}
}

func TestFallbackDesign_UsesRemoteDescriptions(t *testing.T) {
	in := sampleInput()
	c := FallbackContent(in)
	c.Skills[0].Description = "Writes idiomatic concurrent code"

	html, err := FallbackDesign(in, c, 2031)
	require.NoError(t, err)

	doc := parseDoc(t, html)
	assert.Equal(t, "Writes idiomatic concurrent code", doc.Find(".skill-card p").First().Text())
}

func TestFallbackDesign_InvalidColor(t *testing.T) {
	in := sampleInput()
	in.Color = "blue"
	_, err := FallbackDesign(in, FallbackContent(in), 2031)
	assert.ErrorIs(t, err, domain.ErrInvalidColor)
}

func TestDesignGenerator_FallbackWithoutAPIKey(t *testing.T) {
	client := &fakeClient{}
	gen := NewDesignGenerator(client, newLoader(t)).WithClock(fixedClock)

	in := sampleInput()
	res, err := gen.Generate(context.Background(), in, FallbackContent(in))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.ErrorIs(t, res.RemoteErr, llm.ErrMissingAPIKey)
	assert.Zero(t, client.calls())
	assert.Contains(t, res.HTML, "2031 Ada Lovelace")
}

func TestDesignGenerator_Remote(t *testing.T) {
	page := "<!DOCTYPE html><html><body><h1>Ada</h1></body></html>"
	client := &fakeClient{replies: []string{"```html\n" + page + "\n```"}}
	gen := NewDesignGenerator(client, newLoader(t))

	in := sampleInput()
	in.APIKey = "sk-test"
	in.Style = domain.StyleMinimal
	c := FallbackContent(in)

	res, err := gen.Generate(context.Background(), in, c)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceRemote, res.Source)
	assert.Equal(t, page, res.HTML)

	require.Equal(t, 1, client.calls())
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "- Color scheme: #4f46e5")
	assert.Contains(t, prompt, "- Style: minimal")
	assert.Contains(t, prompt, "### About Me")
}

func TestDesignGenerator_RemoteFailures(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeClient
		wantErr error
	}{
		{name: "rejected", client: &fakeClient{err: errors.New("generative service returned status 401")}},
		{name: "empty reply", client: &fakeClient{replies: []string{"```html\n```"}}, wantErr: ErrEmptyDesign},
		{name: "whitespace reply", client: &fakeClient{replies: []string{"  \n "}}, wantErr: ErrEmptyDesign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewDesignGenerator(tt.client, newLoader(t)).WithClock(fixedClock)
			in := sampleInput()
			in.APIKey = "sk-test"

			res, err := gen.Generate(context.Background(), in, FallbackContent(in))
			require.NoError(t, err)
			assert.Equal(t, domain.SourceFallback, res.Source)
			require.Error(t, res.RemoteErr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.RemoteErr, tt.wantErr)
			}
			assert.Equal(t, 1, parseDoc(t, res.HTML).Find("h1").Length())
		})
	}
}
