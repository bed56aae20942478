// Package api defines the wire types of the llmhub chat API.
//
// The package has no external dependencies and performs no I/O. It provides
// the chat request and response records, the [APIError] taxonomy that the
// transport layer maps onto HTTP status codes, and request validation.
//
// Core types:
//   - [ChatRequest]: client request naming a provider and an instruction set
//   - [ChatResponse]: normalized vendor reply plus the echoed conversation id
//   - [APIError]: categorized error with a human-readable message
package api
