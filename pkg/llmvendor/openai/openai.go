// Package openai implements llmvendor.Adapter for the OpenAI Chat Completions
// API. Any server speaking the same protocol can be targeted via BaseURL.
package openai

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
const Name = "openai"

// DefaultBaseURL is the public OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com"

const completionsPath = "/v1/chat/completions"

// Config holds configuration for the OpenAI adapter.
type Config struct {
	// APIKey is sent as a bearer token. An empty key is reported at call time.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Timeout for individual HTTP requests. Defaults to 120s.
	Timeout time.Duration

	// Vendor is the tag reported in errors and logs. Defaults to Name.
	// OpenAI-compatible servers (vLLM, LiteLLM) register under their own tag.
	Vendor string

	// KeyOptional allows calls without an API key, for self-hosted servers.
	KeyOptional bool
}

// Adapter calls the Chat Completions endpoint.
type Adapter struct {
	cfg    Config
	client *http.Client
}

var _ llmvendor.Adapter = (*Adapter)(nil)

// New creates an Adapter.
func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Vendor == "" {
		cfg.Vendor = Name
	}
	return &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Respond sends a system and a user message and returns the content of the
// first choice.
func (a *Adapter) Respond(ctx context.Context, req llmvendor.Request) (string, error) {
	text, err := a.respond(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "openai API call failed",
			"vendor", a.cfg.Vendor,
			"model", req.Model,
			"error", err.Error(),
		)
	}
	return text, err
}

func (a *Adapter) respond(ctx context.Context, req llmvendor.Request) (string, error) {
	if a.cfg.APIKey == "" && !a.cfg.KeyOptional {
		if a.cfg.Vendor == Name {
			return "", fmt.Errorf("%s: OPENAI_API_KEY not set: %w", Name, llmvendor.ErrMissingCredential)
		}
		return "", fmt.Errorf("%s: api_key not set: %w", a.cfg.Vendor, llmvendor.ErrMissingCredential)
	}

	s, err := llmvendor.ReadSampling(a.cfg.Vendor, req.Parameters)
	if err != nil {
		return "", err
	}
	body := chatCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.Message},
		},
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
		TopP:        s.TopP,
	}

	headers := http.Header{}
	if a.cfg.APIKey != "" {
		headers.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}

	var resp chatCompletionResponse
	if err := llmvendor.PostJSON(ctx, a.client, a.cfg.Vendor, a.cfg.BaseURL+completionsPath, headers, body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &llmvendor.CallError{Vendor: a.cfg.Vendor, StatusCode: http.StatusOK, Message: "response contained no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
