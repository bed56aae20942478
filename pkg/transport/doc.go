// Package transport defines the handler interfaces and middleware chain
// shared by the llmhub HTTP and MCP adapters.
//
// # Handler Interfaces
//
//   - Chatter handles the chat operation.
//   - Catalog serves the provider and instruction-set listings.
//   - Hub combines both and is what the engine implements.
//
// # Middleware
//
// The middleware chain wraps Chatter with cross-cutting concerns: panic
// recovery, request ID assignment (X-Request-ID, UUIDs via google/uuid),
// and structured logging via log/slog.
//
// # Errors
//
// Handlers return *api.APIError for client-facing failures. Any other error
// is reported as a server error with its message as the detail. Errors are
// written as {"detail": "..."}.
package transport
