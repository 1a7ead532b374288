package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] binds a topic name to its payload type.
type Event[T any] struct {
	topicName   string
	description string
	key         func(T) string
}

// NewEvent creates a typed event. key, when non-nil, extracts the client ID
// stamped on every published message so subscribers can filter cheaply.
func NewEvent[T any](name, description string, key func(T) string) Event[T] {
	return Event[T]{topicName: name, description: description, key: key}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Description returns the human readable purpose of the topic.
func (e Event[T]) Description() string {
	return e.description
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event.Name(), err)
	}

	msg := Message{Topic: event.Name(), Payload: data}
	if event.key != nil {
		msg.ClientID = event.key(payload)
	}
	return p.Publish(ctx, msg)
}

// Subscribe decodes every message on the event's topic into T before
// calling handler. Messages that do not decode are logged by the bus and
// skipped.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, msg Message, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.Name(), err)
		}
		return handler(ctx, msg, payload)
	})
}
