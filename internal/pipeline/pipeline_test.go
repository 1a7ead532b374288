package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/generator"
	"github.com/nfrund/folio/internal/prompts"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient is an llm.Client that fails or answers from a script.
type scriptedClient struct {
	mu      sync.Mutex
	err     error
	replies []string
	calls   int
}

func (c *scriptedClient) Complete(context.Context, string, string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r, nil
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recorder collects StateChanged events for one test.
type recorder struct {
	mu     sync.Mutex
	events []StateChanged
}

func (r *recorder) handle(_ context.Context, _ pubsub.Message, e StateChanged) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) states() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.State)
	}
	return out
}

func (r *recorder) progress() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Progress)
	}
	return out
}

func (r *recorder) all() []StateChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StateChanged(nil), r.events...)
}

func newBus(t *testing.T) (*pubsub.WatermillBridge, *recorder) {
	t.Helper()
	bus := pubsub.NewWatermillBridge()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = bus.Close()
	})

	rec := &recorder{}
	require.NoError(t, pubsub.Subscribe(ctx, bus, TopicStateChanged, rec.handle))
	return bus, rec
}

func newPipeline(t *testing.T, client *scriptedClient, bus pubsub.Publisher) *Pipeline {
	t.Helper()
	loader, err := prompts.NewLoader("")
	require.NoError(t, err)
	return New(
		generator.NewContentGenerator(client, loader),
		generator.NewDesignGenerator(client, loader),
		bus,
	)
}

func validInput() domain.UserInput {
	return domain.UserInput{
		Name:       "Grace Hopper",
		Profession: "Compiler Engineer",
		Skills:     []string{"COBOL", "Assembly"},
		Experience: "30",
		Projects:   []string{"A-0 compiler"},
		Education:  "Yale",
	}
}

func TestRun_FallbackWithoutAPIKey(t *testing.T) {
	bus, rec := newBus(t)
	client := &scriptedClient{}
	p := newPipeline(t, client, bus)

	res, err := p.Run(context.Background(), "tab-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, StateRendered, res.State)
	assert.Equal(t, "tab-1", res.ClientID)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, domain.SourceFallback, res.ContentSource)
	assert.Equal(t, domain.SourceFallback, res.DesignSource)
	assert.Contains(t, res.HTML, "<h1>Grace Hopper</h1>")
	assert.Zero(t, client.callCount())

	assert.Equal(t, []State{
		StateValidating, StateGeneratingContent, StateGeneratingDesign, StateGeneratingDesign, StateRendered,
	}, rec.states())
	assert.Equal(t, []int{0, 20, 60, 90, 100}, rec.progress())

	for _, e := range rec.all() {
		assert.Equal(t, res.ID, e.GenerationID)
		assert.Equal(t, "tab-1", e.ClientID)
		assert.False(t, e.At.IsZero())
	}
	assert.Equal(t, MsgRendered, rec.all()[4].Message)
}

func TestRun_ValidationFailureMakesNoCall(t *testing.T) {
	bus, rec := newBus(t)
	client := &scriptedClient{}
	p := newPipeline(t, client, bus)

	in := validInput()
	in.Name = "   "
	in.Skills = []string{" ", ""}
	in.APIKey = "sk-test"

	res, err := p.Run(context.Background(), "tab-1", in)
	require.Error(t, err)
	assert.Nil(t, res)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"name", "skills"}, verr.Fields)
	assert.Equal(t, domain.ErrInvalidInput.Error()+": name, skills", err.Error())

	assert.Zero(t, client.callCount(), "no network call for invalid input")
	assert.Equal(t, []State{StateValidating, StateFailed, StateIdle}, rec.states())
	failed := rec.all()[1]
	assert.Equal(t, MsgInvalid, failed.Message)
	assert.Contains(t, failed.Error, "name")
}

func TestRun_RemoteRejectionStillRenders(t *testing.T) {
	bus, rec := newBus(t)
	client := &scriptedClient{err: errors.New("generative service returned status 401: invalid api key")}
	p := newPipeline(t, client, bus)

	in := validInput()
	in.APIKey = "sk-bad"
	res, err := p.Run(context.Background(), "tab-1", in)
	require.NoError(t, err)

	assert.Equal(t, StateRendered, res.State)
	assert.Equal(t, domain.SourceFallback, res.ContentSource)
	assert.Equal(t, domain.SourceFallback, res.DesignSource)
	assert.ErrorContains(t, res.ContentErr, "401")
	assert.ErrorContains(t, res.DesignErr, "401")
	assert.Equal(t, 2, client.callCount(), "one attempt per stage")
	assert.Equal(t, StateRendered, rec.states()[len(rec.states())-1])
}

func TestRun_RemoteSuccess(t *testing.T) {
	bus, _ := newBus(t)
	client := &scriptedClient{replies: []string{
		`{"headline":"Pioneer","about":["One."],"skills":[{"name":"COBOL","description":"Designed it"}],"projects":[{"name":"A-0 compiler","description":"The first"}],"contact":{"email":"grace@navy.mil"}}`,
		"<html><body>remote page</body></html>",
	}}
	p := newPipeline(t, client, bus)

	in := validInput()
	in.APIKey = "sk-good"
	res, err := p.Run(context.Background(), "", in)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRemote, res.ContentSource)
	assert.Equal(t, domain.SourceRemote, res.DesignSource)
	assert.Equal(t, "Pioneer", res.Content.Headline)
	assert.Equal(t, "<html><body>remote page</body></html>", res.HTML)
	assert.Equal(t, res.ID, res.ClientID, "missing client ID defaults to the generation ID")
}

// blockingContent holds the content stage until released.
type blockingContent struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingContent) Generate(ctx context.Context, in domain.UserInput) generator.ContentResult {
	close(b.entered)
	<-b.release
	return generator.ContentResult{Content: generator.FallbackContent(in), Source: domain.SourceFallback}
}

type failingDesign struct{ err error }

func (f failingDesign) Generate(context.Context, domain.UserInput, domain.Content) (generator.DesignResult, error) {
	return generator.DesignResult{}, f.err
}

func TestRun_RejectsConcurrentRunForSameClient(t *testing.T) {
	loader, err := prompts.NewLoader("")
	require.NoError(t, err)
	content := &blockingContent{entered: make(chan struct{}), release: make(chan struct{})}
	p := New(content, generator.NewDesignGenerator(&scriptedClient{}, loader), nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background(), "tab-1", validInput())
		done <- err
	}()

	select {
	case <-content.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first generation never started")
	}

	_, err = p.Run(context.Background(), "tab-1", validInput())
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	close(content.release)
	require.NoError(t, <-done)

	// The client is free again once the first run finished.
	second := &blockingContent{entered: make(chan struct{}), release: make(chan struct{})}
	close(second.release)
	p.content = second
	_, err = p.Run(context.Background(), "tab-1", validInput())
	assert.NoError(t, err)
}

func TestRun_DesignFailureReturnsToIdle(t *testing.T) {
	bus, rec := newBus(t)
	loader, err := prompts.NewLoader("")
	require.NoError(t, err)
	boom := errors.New("renderer exploded")
	p := New(generator.NewContentGenerator(&scriptedClient{}, loader), failingDesign{err: boom}, bus)

	_, err = p.Run(context.Background(), "tab-1", validInput())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []State{
		StateValidating, StateGeneratingContent, StateGeneratingDesign, StateFailed, StateIdle,
	}, rec.states())
	assert.Equal(t, MsgFailed, rec.all()[3].Message)
}

func TestRun_CanceledContext(t *testing.T) {
	bus, rec := newBus(t)
	p := newPipeline(t, &scriptedClient{}, bus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, "tab-1", validInput())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateIdle, rec.states()[len(rec.states())-1])
}

func TestRun_NormalizesInput(t *testing.T) {
	p := newPipeline(t, &scriptedClient{}, nil)

	in := validInput()
	in.Name = "  Grace Hopper "
	in.Color = "#ABC"
	res, err := p.Run(context.Background(), "tab-1", in)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "--primary-color: #aabbcc;")
	assert.Contains(t, res.HTML, "<title>Grace Hopper | Compiler Engineer</title>")
}
