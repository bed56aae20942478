// Package anthropic implements llmvendor.Adapter for the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rhuss/llmhub/pkg/llmvendor"
)

// Name is the vendor tag providers use to select this adapter.
const Name = "anthropic"

const (
	// DefaultBaseURL is the public Anthropic API endpoint.
	DefaultBaseURL = "https://api.anthropic.com"
	// DefaultVersion is the anthropic-version header value.
	DefaultVersion = "2023-06-01"

	messagesPath = "/v1/messages"
)

// Config holds configuration for the Anthropic adapter.
type Config struct {
	// APIKey is sent as x-api-key. An empty key is reported at call time.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Version defaults to DefaultVersion.
	Version string

	// Timeout for individual HTTP requests. Defaults to 120s.
	Timeout time.Duration
}

// Adapter calls the Anthropic Messages API.
type Adapter struct {
	cfg    Config
	client *http.Client
}

var _ llmvendor.Adapter = (*Adapter)(nil)

// New creates an Adapter. It never fails: a missing API key surfaces as
// llmvendor.ErrMissingCredential when Respond is called.
func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Respond sends a single user message with the system prompt carried in the
// top-level system field and returns the first text block of the reply.
func (a *Adapter) Respond(ctx context.Context, req llmvendor.Request) (string, error) {
	text, err := a.respond(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "anthropic API call failed",
			"model", req.Model,
			"error", err.Error(),
		)
	}
	return text, err
}

func (a *Adapter) respond(ctx context.Context, req llmvendor.Request) (string, error) {
	if a.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: ANTHROPIC_API_KEY not set: %w", Name, llmvendor.ErrMissingCredential)
	}

	body, err := buildRequest(req)
	if err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set("x-api-key", a.cfg.APIKey)
	headers.Set("anthropic-version", a.cfg.Version)

	var resp messagesResponse
	if err := llmvendor.PostJSON(ctx, a.client, Name, a.cfg.BaseURL+messagesPath, headers, body, &resp); err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" || block.Type == "" {
			return block.Text, nil
		}
	}
	return "", &llmvendor.CallError{Vendor: Name, StatusCode: http.StatusOK, Message: "response contained no text content"}
}

func buildRequest(req llmvendor.Request) (*messagesRequest, error) {
	s, err := llmvendor.ReadSampling(Name, req.Parameters)
	if err != nil {
		return nil, err
	}
	if s.MaxTokens == nil {
		return nil, &llmvendor.CallError{Vendor: Name, Message: "parameter max_tokens is required"}
	}
	return &messagesRequest{
		Model:       req.Model,
		System:      req.SystemPrompt,
		Messages:    []message{{Role: "user", Content: req.Message}},
		MaxTokens:   *s.MaxTokens,
		Temperature: s.Temperature,
		TopP:        s.TopP,
	}, nil
}
