// Package websocket streams pipeline progress to browser tabs.
package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/nfrund/folio/internal/pipeline"
	"github.com/nfrund/folio/internal/pubsub"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// sendBuffer is the number of events queued per connection before the
	// slowest ones are dropped.
	sendBuffer = 32
)

// ErrMissingClientID is returned when a connection does not say which tab it is.
var ErrMissingClientID = errors.New("client id is required")

// ProgressFeed forwards StateChanged events for one client ID to a
// WebSocket connection as JSON text frames.
type ProgressFeed struct {
	subscriber     pubsub.Subscriber
	originPatterns []string
}

// NewProgressFeed creates a feed reading from subscriber. originPatterns
// lists extra hosts allowed to connect; the request's own host is always
// allowed.
func NewProgressFeed(subscriber pubsub.Subscriber, originPatterns ...string) *ProgressFeed {
	return &ProgressFeed{subscriber: subscriber, originPatterns: originPatterns}
}

// Serve upgrades the request and streams events until the peer goes away or
// the request context ends. Only a missing client ID is returned as an error;
// once the upgrade was attempted the response belongs to the WebSocket.
func (f *ProgressFeed) Serve(w http.ResponseWriter, r *http.Request, clientID string) error {
	if clientID == "" {
		return ErrMissingClientID
	}

	logger := slog.Default().With("client_id", clientID)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: f.originPatterns})
	if err != nil {
		logger.Warn("Failed to upgrade progress feed", "error", err)
		return nil
	}
	defer conn.CloseNow()

	// The feed is one-way; CloseRead discards client frames and cancels ctx
	// once the peer closes.
	ctx := conn.CloseRead(r.Context())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	send := make(chan pipeline.StateChanged, sendBuffer)
	err = pubsub.Subscribe(ctx, f.subscriber, pipeline.TopicStateChanged,
		func(_ context.Context, msg pubsub.Message, event pipeline.StateChanged) error {
			if msg.ClientID != clientID {
				return nil
			}
			select {
			case send <- event:
			default:
				logger.Warn("Progress feed queue full, dropping event", "state", event.State)
			}
			return nil
		})
	if err != nil {
		logger.Error("Failed to subscribe progress feed", "error", err)
		conn.Close(websocket.StatusInternalError, "subscription failed")
		return nil
	}

	logger.Debug("Progress feed connected")
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Progress feed disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case event := <-send:
			wctx, wcancel := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(wctx, conn, event)
			wcancel()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("Progress feed write failed", "error", err)
				return nil
			}
		}
	}
}
