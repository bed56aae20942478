package transport

import (
	"context"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
)

// Chatter handles the chat operation: resolve provider and instruction set,
// call the vendor, and package the reply.
type Chatter interface {
	Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
}

// ChatterFunc is an adapter that allows using an ordinary function as a
// Chatter.
type ChatterFunc func(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)

// Chat calls f(ctx, req).
func (f ChatterFunc) Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	return f(ctx, req)
}

// Catalog serves the listing operations. Both lists are loaded fresh on
// every call.
type Catalog interface {
	Providers(ctx context.Context) ([]catalog.Provider, error)
	Instructions(ctx context.Context) ([]catalog.Instruction, error)
}

// Hub is everything the transport adapters need from the core.
type Hub interface {
	Chatter
	Catalog
}
