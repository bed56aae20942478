package catalog

import (
	"context"
	"errors"
	"maps"
)

// ErrCatalogUnavailable is returned by a strict Store when a catalog cannot
// be loaded.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Parameters maps call parameter names (temperature, max_tokens, ...) to
// scalar values as decoded from JSON.
type Parameters map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	maps.Copy(out, p)
	return out
}

// Overlay returns a copy of p with every key of over written on top.
// Neither input is modified.
func (p Parameters) Overlay(over Parameters) Parameters {
	out := p.Clone()
	maps.Copy(out, over)
	return out
}

// Provider pairs a vendor and a model with default call parameters. Name
// and Description are display fields and are never interpreted.
type Provider struct {
	ID                string     `json:"id"`
	Name              string     `json:"name,omitempty"`
	Description       string     `json:"description,omitempty"`
	Vendor            string     `json:"provider"`
	Model             string     `json:"model"`
	DefaultParameters Parameters `json:"default_parameters,omitempty"`
}

// Instruction is a system prompt plus optional parameter overrides.
type Instruction struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Description  string     `json:"description,omitempty"`
	SystemPrompt string     `json:"system_prompt"`
	Parameters   Parameters `json:"parameters,omitempty"`
}

// Source reads the provider and instruction catalogs from backing storage.
// Implementations must be safe for concurrent use.
type Source interface {
	LoadProviders(ctx context.Context) ([]Provider, error)
	LoadInstructions(ctx context.Context) ([]Instruction, error)
}

// FindProvider returns the first provider whose ID equals id.
func FindProvider(providers []Provider, id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// FindInstruction returns the first instruction set whose ID equals id.
func FindInstruction(instructions []Instruction, id string) (Instruction, bool) {
	for _, in := range instructions {
		if in.ID == id {
			return in, true
		}
	}
	return Instruction{}, false
}
