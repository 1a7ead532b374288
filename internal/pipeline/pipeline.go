// Package pipeline runs one portfolio generation: validate the input, produce
// the copy, produce the page. Every step is a state transition published on
// the event bus so progress can be shown while the remote calls run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/generator"
	"github.com/nfrund/folio/internal/pubsub"
)

// ContentStage produces the portfolio copy.
type ContentStage interface {
	Generate(ctx context.Context, in domain.UserInput) generator.ContentResult
}

// DesignStage produces the portfolio page.
type DesignStage interface {
	Generate(ctx context.Context, in domain.UserInput, c domain.Content) (generator.DesignResult, error)
}

// Result is a rendered portfolio.
type Result struct {
	ID            string
	ClientID      string
	State         State
	Content       domain.Content
	ContentSource domain.Source
	HTML          string
	DesignSource  domain.Source
	// ContentErr and DesignErr record why a stage fell back, if it did.
	ContentErr error
	DesignErr  error
}

// Pipeline runs generations. It is safe for concurrent use; generations for
// different clients run independently.
type Pipeline struct {
	content   ContentStage
	design    DesignStage
	publisher pubsub.Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	running map[string]struct{}
}

// New creates a Pipeline.
func New(content ContentStage, design DesignStage, publisher pubsub.Publisher) *Pipeline {
	return &Pipeline{
		content:   content,
		design:    design,
		publisher: publisher,
		logger:    slog.Default().With("service", "pipeline"),
		now:       func() time.Time { return time.Now().UTC() },
		running:   make(map[string]struct{}),
	}
}

// run is the bookkeeping for a single generation.
type run struct {
	p        *Pipeline
	id       string
	clientID string
	machine  *Machine
	logger   *slog.Logger
}

// Run executes one generation for clientID. Invalid input returns a
// *ValidationError before any remote call. Remote failures are absorbed by
// the fallback generators and never surface here.
func (p *Pipeline) Run(ctx context.Context, clientID string, in domain.UserInput) (*Result, error) {
	id := uuid.NewString()
	if clientID == "" {
		clientID = id
	}
	if !p.acquire(clientID) {
		return nil, ErrGenerationInProgress
	}
	defer p.release(clientID)

	r := &run{
		p:        p,
		id:       id,
		clientID: clientID,
		machine:  NewMachine(),
		logger:   p.logger.With("generation_id", id, "client_id", clientID),
	}

	if err := r.step(ctx, StateValidating, 0, MsgStarting); err != nil {
		return nil, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		verr := newValidationError(err)
		r.fail(ctx, MsgInvalid, verr)
		return nil, verr
	}

	if err := r.step(ctx, StateGeneratingContent, 20, MsgAnalyzing); err != nil {
		return nil, err
	}
	cr := p.content.Generate(ctx, in)
	if err := ctx.Err(); err != nil {
		r.fail(ctx, MsgFailed, err)
		return nil, err
	}

	if err := r.step(ctx, StateGeneratingDesign, 60, MsgDesigning); err != nil {
		return nil, err
	}
	dr, err := p.design.Generate(ctx, in, cr.Content)
	if err != nil {
		err = fmt.Errorf("failed to render portfolio design: %w", err)
		r.fail(ctx, MsgFailed, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		r.fail(ctx, MsgFailed, err)
		return nil, err
	}
	r.publish(ctx, 90, MsgFinalizing, "")

	if err := r.step(ctx, StateRendered, 100, MsgRendered); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Portfolio generated",
		"content_source", cr.Source,
		"design_source", dr.Source,
	)

	return &Result{
		ID:            id,
		ClientID:      clientID,
		State:         StateRendered,
		Content:       cr.Content,
		ContentSource: cr.Source,
		HTML:          dr.HTML,
		DesignSource:  dr.Source,
		ContentErr:    cr.RemoteErr,
		DesignErr:     dr.RemoteErr,
	}, nil
}

func (p *Pipeline) acquire(clientID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.running[clientID]; busy {
		return false
	}
	p.running[clientID] = struct{}{}
	return true
}

func (p *Pipeline) release(clientID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.running, clientID)
}

// step transitions the machine and publishes the new state.
func (r *run) step(ctx context.Context, next State, progress int, msg string) error {
	if err := r.machine.Transition(next); err != nil {
		r.logger.ErrorContext(ctx, "Pipeline state machine rejected transition", "error", err)
		return err
	}
	r.logger.DebugContext(ctx, "Pipeline state changed", "state", next, "progress", progress)
	r.publish(ctx, progress, msg, "")
	return nil
}

// fail moves the machine to Failed, surfaces msg and returns it to Idle.
func (r *run) fail(ctx context.Context, msg string, cause error) {
	var verr *ValidationError
	if errors.As(cause, &verr) {
		r.logger.InfoContext(ctx, "Portfolio input rejected", "fields", verr.Fields)
	} else {
		r.logger.ErrorContext(ctx, "Portfolio generation failed", "error", cause)
	}

	if err := r.machine.Transition(StateFailed); err != nil {
		r.logger.ErrorContext(ctx, "Pipeline state machine rejected transition", "error", err)
		return
	}
	r.publish(ctx, 0, msg, cause.Error())

	if err := r.machine.Transition(StateIdle); err != nil {
		r.logger.ErrorContext(ctx, "Pipeline state machine rejected transition", "error", err)
		return
	}
	r.publish(ctx, 0, "", "")
}

// publish announces the machine's current state. Progress is presentation
// only, so a bus failure is logged rather than failing the generation.
func (r *run) publish(ctx context.Context, progress int, msg, errText string) {
	if r.p.publisher == nil {
		return
	}
	event := StateChanged{
		GenerationID: r.id,
		ClientID:     r.clientID,
		State:        r.machine.State(),
		Progress:     progress,
		Message:      msg,
		Error:        errText,
		At:           r.p.now(),
	}
	// Delivery must not depend on the request: a canceled request still
	// reports its failure to the progress feed.
	if err := pubsub.Publish(context.WithoutCancel(ctx), r.p.publisher, TopicStateChanged, event); err != nil {
		r.logger.WarnContext(ctx, "Failed to publish pipeline state", "state", event.State, "error", err)
	}
}
