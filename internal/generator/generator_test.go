package generator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/prompts"
	"github.com/stretchr/testify/require"
)

// fakeClient is a scripted llm.Client that records every prompt it receives.
type fakeClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, _, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newLoader(t *testing.T) *prompts.Loader {
	t.Helper()
	l, err := prompts.NewLoader("")
	require.NoError(t, err)
	return l
}

func sampleInput() domain.UserInput {
	return domain.UserInput{
		Name:       "Ada Lovelace",
		Profession: "Software Engineer",
		Skills:     []string{"Go", "SQL", "Kubernetes", "HTMX"},
		Experience: "7",
		Projects:   []string{"billing platform", "search service"},
		Education:  "Mathematics",
		Style:      domain.StyleModern,
		Color:      "#4f46e5",
	}
}
