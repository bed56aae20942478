package catalog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	providers := writeFile(t, dir, "providers.json", `[
		{"id": "p1", "provider": "anthropic", "model": "m1", "default_parameters": {"temperature": 0.2}},
		{"id": "p2", "provider": "openai", "model": "gpt"}
	]`)
	instructions := writeFile(t, dir, "instructions.json", `[
		{"id": "i1", "name": "Helper", "system_prompt": "Be brief", "parameters": {"max_tokens": 50}}
	]`)

	src := NewFileSource(providers, instructions)

	got, err := src.LoadProviders(context.Background())
	if err != nil {
		t.Fatalf("LoadProviders failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(got))
	}
	if got[0].Vendor != "anthropic" {
		t.Errorf("vendor = %q, want %q", got[0].Vendor, "anthropic")
	}
	if got[0].DefaultParameters["temperature"] != 0.2 {
		t.Errorf("temperature = %v, want 0.2", got[0].DefaultParameters["temperature"])
	}
	if got[1].DefaultParameters != nil {
		t.Errorf("expected nil parameters, got %v", got[1].DefaultParameters)
	}

	ins, err := src.LoadInstructions(context.Background())
	if err != nil {
		t.Fatalf("LoadInstructions failed: %v", err)
	}
	if len(ins) != 1 {
		t.Fatalf("expected 1 instruction set, got %d", len(ins))
	}
	if ins[0].SystemPrompt != "Be brief" || ins[0].Name != "Helper" {
		t.Errorf("instruction = %+v", ins[0])
	}
	// JSON numbers decode as float64.
	if ins[0].Parameters["max_tokens"] != float64(50) {
		t.Errorf("max_tokens = %v (%T), want float64 50", ins[0].Parameters["max_tokens"], ins[0].Parameters["max_tokens"])
	}
}

func TestFileSource_Defaults(t *testing.T) {
	src := NewFileSource("", "")
	if src.ProvidersPath != DefaultProvidersFile {
		t.Errorf("ProvidersPath = %q, want %q", src.ProvidersPath, DefaultProvidersFile)
	}
	if src.InstructionsPath != DefaultInstructionsFile {
		t.Errorf("InstructionsPath = %q, want %q", src.InstructionsPath, DefaultInstructionsFile)
	}
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"id": "not-an-array"}`)

	src := NewFileSource(filepath.Join(dir, "missing.json"), bad)

	if _, err := src.LoadProviders(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := src.LoadInstructions(context.Background()); err == nil {
		t.Error("expected error for non-array document")
	}
}

type failingSource struct{ err error }

func (f failingSource) LoadProviders(context.Context) ([]Provider, error) { return nil, f.err }
func (f failingSource) LoadInstructions(context.Context) ([]Instruction, error) {
	return nil, f.err
}

func TestStore_FailSoft(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := NewStore(failingSource{err: errors.New("disk on fire")}, WithLogger(logger))

	providers, err := store.Providers(context.Background())
	if err != nil {
		t.Fatalf("fail-soft store returned error: %v", err)
	}
	if providers == nil || len(providers) != 0 {
		t.Errorf("expected empty non-nil providers, got %#v", providers)
	}

	instructions, err := store.Instructions(context.Background())
	if err != nil {
		t.Fatalf("fail-soft store returned error: %v", err)
	}
	if len(instructions) != 0 {
		t.Errorf("expected no instructions, got %d", len(instructions))
	}

	for _, want := range []string{"disk on fire", "catalog=providers"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestStore_Strict(t *testing.T) {
	var failed []string
	store := NewStore(failingSource{err: errors.New("boom")},
		WithStrict(true),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithFailureHook(func(catalog string, _ error) { failed = append(failed, catalog) }),
	)
	if !store.Strict() {
		t.Error("expected strict store")
	}

	if _, err := store.Providers(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("Providers: expected ErrCatalogUnavailable, got %v", err)
	}
	if _, err := store.Instructions(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("Instructions: expected ErrCatalogUnavailable, got %v", err)
	}

	if want := []string{"providers", "instructions"}; !reflect.DeepEqual(failed, want) {
		t.Errorf("failure hook saw %v, want %v", failed, want)
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	providers := []Provider{
		{ID: "p1", Model: "first"},
		{ID: "p1", Model: "second"},
	}
	p, ok := FindProvider(providers, "p1")
	if !ok || p.Model != "first" {
		t.Errorf("FindProvider = %+v, %v; want first entry", p, ok)
	}
	if _, ok := FindProvider(providers, "nope"); ok {
		t.Error("expected no match for unknown provider")
	}

	instructions := []Instruction{{ID: "i1", SystemPrompt: "a"}, {ID: "i1", SystemPrompt: "b"}}
	in, ok := FindInstruction(instructions, "i1")
	if !ok || in.SystemPrompt != "a" {
		t.Errorf("FindInstruction = %+v, %v; want first entry", in, ok)
	}
	if _, ok := FindInstruction(nil, "i1"); ok {
		t.Error("expected no match in empty list")
	}
}

func TestParameters_OverlayDoesNotMutate(t *testing.T) {
	base := Parameters{"temperature": 0.7, "max_tokens": 1000}
	over := Parameters{"temperature": 0.1}

	got := base.Overlay(over)

	if want := (Parameters{"temperature": 0.1, "max_tokens": 1000}); !reflect.DeepEqual(got, want) {
		t.Errorf("Overlay = %v, want %v", got, want)
	}
	if base["temperature"] != 0.7 {
		t.Errorf("base mutated: %v", base)
	}

	var nilParams Parameters
	if nilParams.Clone() == nil {
		t.Error("Clone of nil returned nil")
	}
	if got := nilParams.Overlay(over); !reflect.DeepEqual(got, over) {
		t.Errorf("nil.Overlay = %v, want %v", got, over)
	}
}
