package hub

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/config"
	"github.com/rhuss/llmhub/pkg/llmvendor"
	"github.com/rhuss/llmhub/pkg/llmvendor/vendortest"
)

func writeCatalog(t *testing.T, providers []catalog.Provider, instructions []catalog.Instruction) (string, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name string, v any) string {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}
	return write("providers.json", providers), write("instructions.json", instructions)
}

// mockConfig points both built-in vendors at a vendortest server.
func mockConfig(t *testing.T) config.Config {
	t.Helper()
	mock := vendortest.NewServer()
	t.Cleanup(mock.Close)

	cfg := config.Defaults()
	cfg.Vendors.Anthropic.APIKey = "k"
	cfg.Vendors.Anthropic.BaseURL = mock.URL
	cfg.Vendors.OpenAI.APIKey = "k"
	cfg.Vendors.OpenAI.BaseURL = mock.URL
	return cfg
}

func TestNewWiresFileCatalogAndVendors(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Catalog.ProvidersFile, cfg.Catalog.InstructionsFile = writeCatalog(t,
		[]catalog.Provider{
			{ID: "claude", Vendor: "anthropic", Model: "claude-3-haiku"},
			{ID: "gpt", Vendor: "openai", Model: "gpt-4o-mini"},
		},
		[]catalog.Instruction{{ID: "terse", SystemPrompt: "Be terse."}},
	)

	h, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	if got, want := h.Vendors.Tags(), []string{"anthropic", "openai"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
	if h.Store.Strict() {
		t.Error("store is strict by default")
	}

	for _, id := range []string{"claude", "gpt"} {
		resp, err := h.Engine.Chat(context.Background(), &api.ChatRequest{
			ProviderID:    id,
			InstructionID: "terse",
			Message:       "hi",
		})
		if err != nil {
			t.Fatalf("%s: Chat failed: %v", id, err)
		}
		if !strings.Contains(resp.Response, "(Be terse.)") {
			t.Errorf("%s: response = %q", id, resp.Response)
		}
		if resp.ConversationID != api.PlaceholderConversationID {
			t.Errorf("%s: conversation_id = %q", id, resp.ConversationID)
		}
	}
}

func TestNewPartialEngineDefaultsKeepMaxTokens(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Engine.DefaultParameters = map[string]any{"temperature": 0.3}
	cfg.Catalog.ProvidersFile, cfg.Catalog.InstructionsFile = writeCatalog(t,
		[]catalog.Provider{{ID: "claude", Vendor: "anthropic", Model: "claude-3-haiku"}},
		[]catalog.Instruction{{ID: "plain", SystemPrompt: "Be plain."}},
	)

	h, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	// Anthropic rejects requests without max_tokens; the built-in default
	// must survive a defaults map that only sets temperature.
	resp, err := h.Engine.Chat(context.Background(), &api.ChatRequest{
		ProviderID:    "claude",
		InstructionID: "plain",
		Message:       "hi",
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if want := vendortest.Reply("claude-3-haiku", "Be plain.", "hi"); resp.Response != want {
		t.Errorf("response = %q, want %q", resp.Response, want)
	}
}

func TestNewStrictFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Catalog.Strict = true
	cfg.Catalog.ProvidersFile = filepath.Join(t.TempDir(), "missing.json")

	var failed []string
	h, err := New(context.Background(), &cfg, WithStoreOptions(
		catalog.WithFailureHook(func(name string, _ error) { failed = append(failed, name) }),
	))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	if !h.Store.Strict() {
		t.Error("expected strict store")
	}
	if _, err := h.Engine.Providers(context.Background()); err == nil {
		t.Error("expected error from strict store")
	}
	if want := []string{"providers"}; !reflect.DeepEqual(failed, want) {
		t.Errorf("failure hook saw %v, want %v", failed, want)
	}
}

type staticSource struct{}

func (staticSource) LoadProviders(context.Context) ([]catalog.Provider, error) {
	return []catalog.Provider{{ID: "p", Vendor: "openai", Model: "m"}}, nil
}

func (staticSource) LoadInstructions(context.Context) ([]catalog.Instruction, error) {
	return nil, nil
}

func TestWithSource(t *testing.T) {
	cfg := config.Defaults()
	h, err := New(context.Background(), &cfg, WithSource(staticSource{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	providers, err := h.Engine.Providers(context.Background())
	if err != nil {
		t.Fatalf("Providers failed: %v", err)
	}
	if len(providers) != 1 || providers[0].ID != "p" {
		t.Errorf("providers = %+v", providers)
	}
}

func TestNewVendorsCompatible(t *testing.T) {
	mock := vendortest.NewServer()
	defer mock.Close()

	reg := NewVendors(config.VendorsConfig{
		Compatible: []config.CompatibleConfig{{Name: "litellm", BaseURL: mock.URL, APIKey: "k"}},
	})
	if got, want := reg.Tags(), []string{"anthropic", "litellm", "openai"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}

	a, ok := reg.Lookup("litellm")
	if !ok {
		t.Fatal("litellm not registered")
	}
	out, err := a.Respond(context.Background(), llmvendor.Request{
		Message:    "hi",
		Model:      "llama-3",
		Parameters: catalog.Parameters{"max_tokens": 10},
	})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if want := vendortest.Reply("llama-3", "", "hi"); out != want {
		t.Errorf("Respond = %q, want %q", out, want)
	}
}

func TestMissingCredentials(t *testing.T) {
	var cfg config.VendorsConfig
	if got, want := MissingCredentials(cfg), []string{"anthropic", "openai"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingCredentials = %v, want %v", got, want)
	}

	cfg.OpenAI.APIKey = "k"
	if got, want := MissingCredentials(cfg), []string{"anthropic"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingCredentials = %v, want %v", got, want)
	}
}
