package transport

import (
	"context"

	"github.com/google/uuid"

	"github.com/rhuss/llmhub/pkg/api"
)

// RequestID returns middleware that makes sure every request carries an ID.
// An ID already in the context (set by the HTTP adapter from X-Request-ID)
// is kept; otherwise a new one is generated.
func RequestID() Middleware {
	return func(next Chatter) Chatter {
		return ChatterFunc(func(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
			if RequestIDFromContext(ctx) == "" {
				ctx = ContextWithRequestID(ctx, NewRequestID())
			}
			return next.Chat(ctx, req)
		})
	}
}

// NewRequestID returns a random UUID string.
func NewRequestID() string {
	return uuid.NewString()
}
