package pipeline

import (
	"time"

	"github.com/nfrund/folio/internal/pubsub"
)

// StateChanged is published on every transition and progress update of a
// generation.
type StateChanged struct {
	GenerationID string    `json:"generation_id"`
	ClientID     string    `json:"client_id"`
	State        State     `json:"state"`
	Progress     int       `json:"progress"`
	Message      string    `json:"message,omitempty"`
	Error        string    `json:"error,omitempty"`
	At           time.Time `json:"at"`
}

// TopicStateChanged carries StateChanged events keyed by client ID.
var TopicStateChanged = pubsub.NewEvent(
	"portfolio.state",
	"Portfolio generation state transitions and progress",
	func(e StateChanged) string { return e.ClientID },
)

// Progress messages shown while a generation runs.
const (
	MsgStarting   = "Starting portfolio generation..."
	MsgAnalyzing  = "Analyzing your information..."
	MsgDesigning  = "Creating your design..."
	MsgFinalizing = "Finalizing your portfolio..."
	MsgRendered   = "Portfolio generated successfully!"
	MsgInvalid    = "Please fill in all required fields"
	MsgFailed     = "Error generating portfolio. Please check your API key and try again."
)
