// Package trace provides request tracing identifiers.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// Context contains request tracing information.
type Context struct {
	TraceID   string
	RequestID string
}

type traceContextKey struct{}

// With adds trace Context to context.
func With(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}

// Get returns trace Context from context, or nil.
func Get(ctx context.Context) *Context {
	if v, ok := ctx.Value(traceContextKey{}).(*Context); ok {
		return v
	}
	return nil
}

// RequestID returns request ID from context or empty string.
func RequestID(ctx context.Context) string {
	if t := Get(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// NewContext creates a trace Context with generated IDs.
func NewContext() *Context {
	return &Context{
		TraceID:   uuid.New().String(),
		RequestID: uuid.New().String(),
	}
}
