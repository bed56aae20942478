package llmvendor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rhuss/llmhub/pkg/catalog"
)

// ErrMissingCredential is returned when an adapter is invoked without the
// API key its vendor requires.
var ErrMissingCredential = errors.New("missing vendor credential")

// Request is one single-turn chat call.
type Request struct {
	Message      string
	SystemPrompt string
	Model        string
	Parameters   catalog.Parameters
}

// Adapter sends a chat request to one vendor and returns the text reply.
type Adapter interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// AdapterFunc adapts an ordinary function to the Adapter interface.
type AdapterFunc func(ctx context.Context, req Request) (string, error)

// Respond calls f(ctx, req).
func (f AdapterFunc) Respond(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Registry maps vendor tags ("anthropic", "openai") to adapters. It is
// populated at startup and read-only afterwards.
type Registry map[string]Adapter

// Lookup returns the adapter registered for tag.
func (r Registry) Lookup(tag string) (Adapter, bool) {
	a, ok := r[tag]
	return a, ok
}

// Tags returns the registered vendor tags in sorted order.
func (r Registry) Tags() []string {
	tags := make([]string, 0, len(r))
	for tag := range r {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// CallError is a vendor-level failure: network error, non-2xx status,
// undecodable body, empty content, or an unusable parameter value.
type CallError struct {
	Vendor string
	// StatusCode is the vendor's HTTP status, or 0 when no response was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %s", e.Vendor, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Vendor, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
