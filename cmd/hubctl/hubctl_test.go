package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/llmvendor/vendortest"
)

const providersJSON = `[
  {"id": "claude", "provider": "anthropic", "model": "claude-3-haiku", "default_parameters": {"temperature": 0.3}},
  {"id": "gpt", "provider": "openai", "model": "gpt-4o-mini"}
]`

const instructionsJSON = `[
  {"id": "terse", "name": "Terse", "system_prompt": "Answer in one line.", "parameters": {"max_tokens": 50}}
]`

// setup writes a catalog and config to a temp dir, points the vendors at a
// mock server and returns the config path.
func setup(t *testing.T, providers, instructions string) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}
	write("providers.json", providers)
	write("instructions.json", instructions)

	mock := vendortest.NewServer()
	t.Cleanup(mock.Close)

	t.Setenv("LLMHUB_PROVIDERS_FILE", filepath.Join(dir, "providers.json"))
	t.Setenv("LLMHUB_INSTRUCTIONS_FILE", filepath.Join(dir, "instructions.json"))
	t.Setenv("LLMHUB_CATALOG_SOURCE", "")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", mock.URL)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", mock.URL)

	return write("llmhub.yaml", "logging:\n  level: error\n")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// mustRun fails the test when the command returns an error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("hubctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func assertContainsAll(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProvidersTable(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "providers")
	assertContainsAll(t, out, "claude", "claude-3-haiku", "temperature=0.3", "gpt-4o-mini")
}

func TestProvidersJSON(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "-o", "json", "providers")

	var got []catalog.Provider
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(got) != 2 || got[1].Vendor != "openai" {
		t.Errorf("providers = %+v", got)
	}
}

func TestInstructionsTable(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "instructions")
	assertContainsAll(t, out, "terse", "Answer in one line.", "max_tokens=50")
}

func TestListingFailsOnBrokenCatalog(t *testing.T) {
	cfg := setup(t, `{not json`, instructionsJSON)

	_, err := run(t, "--config", cfg, "providers")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	_, err := run(t, "--config", cfg, "-o", "yaml", "providers")
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Errorf("expected --output error, got %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "validate")
	assertContainsAll(t, out, "2 provider(s), 1 instruction set(s), 0 error(s), 0 warning(s)")
}

func TestValidateReportsProblems(t *testing.T) {
	providers := `[
  {"id": "a", "provider": "gemini", "model": "g1"},
  {"id": "b", "provider": "openai", "model": ""},
  {"id": "b", "provider": "openai", "model": "m"},
  {"id": "c", "provider": "openai", "model": "m", "default_parameters": {"temperature": "hot"}}
]`
	instructions := `[{"id": "x", "system_prompt": ""}]`
	cfg := setup(t, providers, instructions)

	out, err := run(t, "--config", cfg, "-o", "json", "validate")
	if err == nil || !strings.Contains(err.Error(), "3 error(s)") {
		t.Fatalf("expected 3 errors, got %v", err)
	}

	var r report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, out)
	}

	wantErrors := []string{
		`provider "a": unsupported vendor "gemini"`,
		`provider "b": missing model`,
		`provider "c": parameter temperature: expected a number, got string`,
	}
	wantWarnings := []string{
		`instruction set "x": empty system_prompt`,
		`provider "b" is defined more than once, the first entry wins`,
	}
	slices.Sort(r.Errors)
	slices.Sort(r.Warnings)
	if !reflect.DeepEqual(r.Errors, wantErrors) {
		t.Errorf("errors = %q, want %q", r.Errors, wantErrors)
	}
	if !reflect.DeepEqual(r.Warnings, wantWarnings) {
		t.Errorf("warnings = %q, want %q", r.Warnings, wantWarnings)
	}
}

func TestChat(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "chat", "-p", "claude", "-i", "terse", "hello", "there")
	if want := vendortest.Reply("claude-3-haiku", "Answer in one line.", "hello there") + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestChatJSONEchoesConversation(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	out := mustRun(t, "--config", cfg, "-o", "json", "chat", "-p", "gpt", "-i", "terse", "--conversation-id", "conv-9", "hi")

	var resp api.ChatResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if resp.ConversationID != "conv-9" {
		t.Errorf("conversation_id = %q, want %q", resp.ConversationID, "conv-9")
	}
	if want := vendortest.Reply("gpt-4o-mini", "Answer in one line.", "hi"); resp.Response != want {
		t.Errorf("response = %q, want %q", resp.Response, want)
	}
}

func TestChatUnknownProvider(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)

	_, err := run(t, "--config", cfg, "chat", "-p", "nope", "-i", "terse", "hi")

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.APIError, got %v", err)
	}
	if apiErr.Type != api.ErrorTypeNotFound {
		t.Errorf("error type = %q, want %q", apiErr.Type, api.ErrorTypeNotFound)
	}
}

func TestImportRequiresDSN(t *testing.T) {
	cfg := setup(t, providersJSON, instructionsJSON)
	t.Setenv("LLMHUB_POSTGRES_DSN", "")

	_, err := run(t, "--config", cfg, "import")
	if err == nil || !strings.Contains(err.Error(), "DSN is required") {
		t.Errorf("expected DSN error, got %v", err)
	}
}
