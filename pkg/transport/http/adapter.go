package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/rs/cors"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/transport"
)

// Adapter serves the llmhub API over HTTP.
type Adapter struct {
	hub    transport.Hub
	chat   transport.Chatter // hub wrapped in middleware
	mux    *http.ServeMux
	config Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// StaticDir is served for every unmatched GET path when it exists.
	StaticDir string

	// CORSOrigins lists allowed origins. Empty means all origins.
	CORSOrigins []string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
		StaticDir:   "frontend",
	}
}

// NewAdapter creates an HTTP adapter for hub. Middleware wraps the chat
// operation in the given order.
func NewAdapter(hub transport.Hub, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}

	var chat transport.Chatter = hub
	if len(middlewares) > 0 {
		chat = transport.Chain(middlewares...)(hub)
	}

	a := &Adapter{
		hub:    hub,
		chat:   chat,
		mux:    http.NewServeMux(),
		config: cfg,
	}

	a.mux.HandleFunc("POST /api/chat", a.handleChat)
	a.mux.HandleFunc("GET /api/providers", a.handleProviders)
	a.mux.HandleFunc("GET /api/instructions", a.handleInstructions)
	a.mux.HandleFunc("GET /api/", handleUnknownAPI)
	a.mux.HandleFunc("GET /healthz", handleHealth)

	if static := newStaticHandler(cfg.StaticDir); static != nil {
		a.mux.Handle("GET /", static)
	}

	return a
}

// Mount registers an extra handler, such as "GET /metrics".
func (a *Adapter) Mount(pattern string, h http.Handler) {
	a.mux.Handle(pattern, h)
}

// MountMethods registers h at path for each method. A method-less pattern
// would conflict with the "GET /" static route.
func (a *Adapter) MountMethods(path string, h http.Handler, methods ...string) {
	for _, m := range methods {
		a.mux.Handle(m+" "+path, h)
	}
}

// Handler returns the http.Handler for this adapter, with CORS and
// X-Request-ID propagation applied.
func (a *Adapter) Handler() http.Handler {
	return a.cors().Handler(httpRequestIDMiddleware(a.mux))
}

func (a *Adapter) cors() *cors.Cors {
	origins := a.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
}

// httpRequestIDMiddleware puts the client's X-Request-ID into the context,
// or a new ID when absent, and echoes it on the response.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = transport.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(transport.ContextWithRequestID(r.Context(), id)))
	})
}

// handleChat handles POST /api/chat.
func (a *Adapter) handleChat(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
				http.StatusUnsupportedMediaType,
			)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	if apiErr := api.ValidateChatRequest(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	resp, err := a.chat.Chat(r.Context(), &req)
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProviders handles GET /api/providers.
func (a *Adapter) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := a.hub.Providers(r.Context())
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// handleInstructions handles GET /api/instructions.
func (a *Adapter) handleInstructions(w http.ResponseWriter, r *http.Request) {
	instructions, err := a.hub.Instructions(r.Context())
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructions)
}

// handleUnknownAPI keeps GET requests under /api/ away from the static
// fallback. POST-only routes still answer 405.
func handleUnknownAPI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/chat" {
		w.Header().Set("Allow", http.MethodPost)
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("method", "Method Not Allowed"),
			http.StatusMethodNotAllowed,
		)
		return
	}
	transport.WriteAPIError(w, api.NewNotFoundError("Not Found: "+r.URL.Path))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
