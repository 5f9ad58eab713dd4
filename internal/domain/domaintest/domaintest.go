// Package domaintest provides in-memory repository implementations for
// service tests. The stores honor the same error contracts as the postgres
// repositories (NotFound, Duplicate, InvalidState on the one-live-batch
// rule) so services under test cannot tell the difference.
package domaintest

import (
	"context"
	"sync"
)

// TxManager is a pass-through transaction manager. Every call runs the
// function directly on the given context.
type TxManager struct{}

// RunInTransaction runs fn immediately.
func (TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ReadOnly runs fn immediately.
func (TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Event is a captured publication.
type Event struct {
	Topic   string
	Kind    string
	Payload any
}

// Publisher records every published event for assertion.
type Publisher struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements events.Publisher.
func (p *Publisher) Publish(topic, kind string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Event{Topic: topic, Kind: kind, Payload: payload})
}

// Events returns a copy of the captured events.
func (p *Publisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Kinds returns the captured event kinds in publication order.
func (p *Publisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
