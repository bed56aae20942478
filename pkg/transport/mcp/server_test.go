package mcp

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/transport"
)

type fakeHub struct {
	chatErr error
	lastReq *api.ChatRequest
}

func (f *fakeHub) Chat(_ context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	f.lastReq = req
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return &api.ChatResponse{Response: "reply to " + req.Message, ConversationID: req.ConversationIDOrPlaceholder()}, nil
}

func (f *fakeHub) Providers(context.Context) ([]catalog.Provider, error) {
	return []catalog.Provider{{ID: "p1", Vendor: "openai", Model: "gpt-4o"}}, nil
}

func (f *fakeHub) Instructions(context.Context) ([]catalog.Instruction, error) {
	return []catalog.Instruction{{ID: "i1", SystemPrompt: "Be terse."}}, nil
}

// connect runs the server over in-memory transports and returns a client session.
func connect(t *testing.T, hub transport.Hub) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv := NewServer(hub, "test", transport.Recovery(), transport.RequestID())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	go func() {
		_ = srv.MCPServer().Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) failed: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestTools_Listed(t *testing.T) {
	session := connect(t, &fakeHub{})

	names := map[string]bool{}
	for tool, err := range session.Tools(context.Background(), nil) {
		if err != nil {
			t.Fatalf("listing tools: %v", err)
		}
		names[tool.Name] = true
	}
	want := map[string]bool{"list_providers": true, "list_instructions": true, "chat": true}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("tools = %v, want %v", names, want)
	}
}

func TestChatTool(t *testing.T) {
	hub := &fakeHub{}
	session := connect(t, hub)

	res := callTool(t, session, "chat", map[string]any{"provider_id": "p1", "instruction_id": "i1", "message": "Hi"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text(t, res))
	}
	if got := text(t, res); got != "reply to Hi" {
		t.Errorf("text = %q, want %q", got, "reply to Hi")
	}
	if hub.lastReq == nil || hub.lastReq.ProviderID != "p1" {
		t.Errorf("hub saw %+v", hub.lastReq)
	}
}

func TestChatTool_ErrorsAreToolErrors(t *testing.T) {
	session := connect(t, &fakeHub{chatErr: api.NewNotFoundError("Provider p9 not found")})

	res := callTool(t, session, "chat", map[string]any{"provider_id": "p9", "instruction_id": "i1", "message": "Hi"})
	if !res.IsError {
		t.Error("expected IsError")
	}
	if got := text(t, res); got != "Provider p9 not found" {
		t.Errorf("text = %q", got)
	}
}

func TestChatTool_EmptyMessageRejected(t *testing.T) {
	hub := &fakeHub{}
	session := connect(t, hub)

	res := callTool(t, session, "chat", map[string]any{"provider_id": "p1", "instruction_id": "i1", "message": ""})
	if !res.IsError {
		t.Error("expected IsError")
	}
	if hub.lastReq != nil {
		t.Errorf("hub called with %+v", hub.lastReq)
	}
}

func TestListProvidersTool(t *testing.T) {
	session := connect(t, &fakeHub{})

	res := callTool(t, session, "list_providers", map[string]any{})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text(t, res))
	}

	var out ProvidersOutput
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(out.Providers) != 1 || out.Providers[0].Model != "gpt-4o" {
		t.Errorf("providers = %+v", out.Providers)
	}
}

func TestListInstructionsTool(t *testing.T) {
	session := connect(t, &fakeHub{})

	res := callTool(t, session, "list_instructions", map[string]any{})

	var out InstructionsOutput
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(out.Instructions) != 1 || out.Instructions[0].SystemPrompt != "Be terse." {
		t.Errorf("instructions = %+v", out.Instructions)
	}
}
