// Package mcp exposes the llmhub operations as Model Context Protocol tools
// over the streamable HTTP transport of the official MCP Go SDK.
//
// Tools:
//   - list_providers: the provider catalog
//   - list_instructions: the instruction-set catalog
//   - chat: one chat exchange, returning the response text
//
// Failures are reported as tool errors (IsError) carrying the same message
// the HTTP API would put in "detail".
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/debug"
	"github.com/rhuss/llmhub/pkg/transport"
)

// ChatInput mirrors the HTTP chat request body.
type ChatInput struct {
	ProviderID     string `json:"provider_id" jsonschema:"ID of a configured provider"`
	InstructionID  string `json:"instruction_id" jsonschema:"ID of a configured instruction set"`
	Message        string `json:"message" jsonschema:"the user message"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"optional conversation identifier to echo back"`
}

// ProvidersOutput is the JSON text returned by list_providers.
type ProvidersOutput struct {
	Providers []catalog.Provider `json:"providers"`
}

// InstructionsOutput is the JSON text returned by list_instructions.
type InstructionsOutput struct {
	Instructions []catalog.Instruction `json:"instructions"`
}

// Server wraps an MCP server bound to a transport.Hub.
type Server struct {
	hub    transport.Hub
	chat   transport.Chatter
	server *mcp.Server
}

// NewServer registers the llmhub tools on a new MCP server. Middleware
// wraps the chat tool in the given order.
func NewServer(hub transport.Hub, version string, middlewares ...transport.Middleware) *Server {
	var chat transport.Chatter = hub
	if len(middlewares) > 0 {
		chat = transport.Chain(middlewares...)(hub)
	}

	s := &Server{
		hub:  hub,
		chat: chat,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "llmhub", Version: version},
			nil,
		),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_providers",
		Description: "Lists the configured LLM providers (vendor, model, default parameters)",
	}, s.listProviders)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_instructions",
		Description: "Lists the configured instruction sets (system prompts and parameter overrides)",
	}, s.listInstructions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chat",
		Description: "Sends a message to a configured provider using a configured instruction set and returns the reply",
	}, s.chatTool)

	return s
}

// MCPServer returns the underlying SDK server, e.g. for in-memory transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Handler returns the streamable HTTP handler to mount at /mcp.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

func (s *Server) listProviders(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	providers, err := s.hub.Providers(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return jsonResult(ProvidersOutput{Providers: providers}), nil, nil
}

func (s *Server) listInstructions(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	instructions, err := s.hub.Instructions(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return jsonResult(InstructionsOutput{Instructions: instructions}), nil, nil
}

func (s *Server) chatTool(ctx context.Context, _ *mcp.CallToolRequest, in ChatInput) (*mcp.CallToolResult, any, error) {
	req := &api.ChatRequest{
		ProviderID:     in.ProviderID,
		InstructionID:  in.InstructionID,
		Message:        in.Message,
		ConversationID: in.ConversationID,
	}
	if apiErr := api.ValidateChatRequest(req); apiErr != nil {
		return toolError(apiErr), nil, nil
	}

	debug.Log("mcp", "chat tool called", "provider_id", req.ProviderID, "instruction_id", req.InstructionID)

	resp, err := s.chat.Chat(ctx, req)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: resp.Response}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: transport.AsAPIError(err).Message}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding tool result", "error", err.Error())
		return toolError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
