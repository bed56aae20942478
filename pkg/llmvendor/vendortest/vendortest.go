// Package vendortest provides a deterministic stand-in for the Anthropic
// Messages and OpenAI Chat Completions APIs.
//
// Replies echo the model and the user message, prefixed with the system
// prompt in parentheses when one is sent:
//
//	(You are terse.) claude-3-haiku says: hello
//
// A user message containing FailTrigger produces an HTTP 500 with a
// vendor-shaped error body. Requests without credentials get a 401.
package vendortest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

// FailTrigger makes the mock answer with a server error.
const FailTrigger = "trigger-error"

// FailMessage is the error message returned for FailTrigger.
const FailMessage = "mock vendor failure"

// Reply returns the text the mock answers with.
func Reply(model, system, message string) string {
	text := fmt.Sprintf("%s says: %s", model, message)
	if system != "" {
		text = "(" + system + ") " + text
	}
	return text
}

// NewServer starts an httptest server serving Handler. Callers must Close it.
func NewServer() *httptest.Server {
	return httptest.NewServer(Handler())
}

// Handler serves both vendor APIs plus /healthz.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/messages", handleMessages)
	mux.HandleFunc("POST /v1/chat/completions", handleChatCompletions)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

// --- Anthropic ---

type messagesRequest struct {
	Model     string    `json:"model"`
	System    string    `json:"system"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-api-key") == "" {
		writeError(w, http.StatusUnauthorized, "x-api-key header is required")
		return
	}
	var req messagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MaxTokens <= 0 {
		writeError(w, http.StatusBadRequest, "max_tokens: field required")
		return
	}

	msg := lastUserMessage(req.Messages)
	if strings.Contains(msg, FailTrigger) {
		writeError(w, http.StatusInternalServerError, FailMessage)
		return
	}

	writeJSON(w, map[string]any{
		"id":    "msg_mock",
		"type":  "message",
		"role":  "assistant",
		"model": req.Model,
		"content": []map[string]any{
			{"type": "text", "text": Reply(req.Model, req.System, msg)},
		},
		"stop_reason": "end_turn",
	})
}

// --- OpenAI ---

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var system string
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = m.Content
		}
	}
	msg := lastUserMessage(req.Messages)
	if strings.Contains(msg, FailTrigger) {
		writeError(w, http.StatusInternalServerError, FailMessage)
		return
	}

	writeJSON(w, map[string]any{
		"id":     "chatcmpl-mock",
		"object": "chat.completion",
		"model":  req.Model,
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": Reply(req.Model, system, msg)},
				"finish_reason": "stop",
			},
		},
	})
}

// --- Helpers ---

func lastUserMessage(msgs []message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError uses the {"error":{"message"}} shape both vendors share.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "mock_error", "message": msg},
	})
}
