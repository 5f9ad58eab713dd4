// Package events provides the outbound event publisher implementation.
package events

import (
	"context"

	"farmledger/pkg/logger"
)

// LogPublisher emits domain events to the structured log. It stands in
// for the realtime push channel: consumers tail the event log, and a
// broker-backed publisher can replace it without touching domain code.
//
// Publish is fire-and-forget. It runs after the originating transaction
// commits and never propagates failures back to the caller.
type LogPublisher struct{}

// NewLogPublisher creates a new log-backed publisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish implements events.Publisher.
func (p *LogPublisher) Publish(topicHint, kind string, payload any) {
	logger.Info(context.Background(), "event published",
		"topic", topicHint,
		"kind", kind,
		"payload", payload,
	)
}
