package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/nfrund/folio/internal/pipeline"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records the input it was called with and returns a scripted outcome.
type fakeGenerator struct {
	mu       sync.Mutex
	result   *pipeline.Result
	err      error
	calls    int
	clientID string
	input    domain.UserInput
}

func (f *fakeGenerator) Run(_ context.Context, clientID string, in domain.UserInput) (*pipeline.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.clientID = clientID
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.ClientID = clientID
	return &res, nil
}

func renderedResult() *pipeline.Result {
	return &pipeline.Result{
		ID:            "gen-1",
		State:         pipeline.StateRendered,
		Content:       domain.Content{Title: "Ada Lovelace", Headline: "Engineer"},
		ContentSource: domain.SourceFallback,
		HTML:          "<!DOCTYPE html><html><head><title>Ada</title></head><body><h1>Ada</h1></body></html>",
		DesignSource:  domain.SourceFallback,
	}
}

// newEcho builds an Echo instance with the renderer, validator and session
// store the handlers rely on.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	return e
}

func newPortfolioEcho(gen handlers.Generator) *echo.Echo {
	e := newEcho()
	h := handlers.NewPortfolioHandler(gen, export.New())
	e.GET("/", handlers.NewHomeHandler().HomeGet)
	e.POST("/portfolio/generate", h.Generate)
	e.POST("/portfolio/export", h.Export)
	e.POST("/api/v1/portfolio", h.CreateAPI)
	return e
}

func formRequest(target string, values url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func jsonRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func validForm() url.Values {
	return url.Values{
		"client_id":  {"tab-1"},
		"name":       {"Ada Lovelace"},
		"profession": {"Engineer"},
		"skills":     {"Go, , SQL"},
		"experience": {"5"},
		"projects":   {"Billing, Search"},
		"education":  {"BSc"},
		"style":      {"modern"},
		"color":      {"#4f46e5"},
		"api_key":    {"sk-test"},
	}
}
