package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/debug"
	"github.com/rhuss/llmhub/pkg/llmvendor"
	"github.com/rhuss/llmhub/pkg/observability"
	"github.com/rhuss/llmhub/pkg/transport"
)

// Engine resolves chat requests against the catalogs and the vendor registry.
type Engine struct {
	catalog transport.Catalog
	vendors llmvendor.Registry
	cfg     Config
}

var _ transport.Hub = (*Engine)(nil)

// New creates an Engine. cat is usually a *catalog.Store.
func New(cat transport.Catalog, vendors llmvendor.Registry, cfg Config) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("engine: catalog must not be nil")
	}
	if vendors == nil {
		vendors = llmvendor.Registry{}
	}
	return &Engine{
		catalog: cat,
		vendors: vendors,
		cfg:     cfg,
	}, nil
}

// Providers returns the provider catalog.
func (e *Engine) Providers(ctx context.Context) ([]catalog.Provider, error) {
	providers, err := e.catalog.Providers(ctx)
	if err != nil {
		return nil, catalogError(err)
	}
	return providers, nil
}

// Instructions returns the instruction catalog.
func (e *Engine) Instructions(ctx context.Context) ([]catalog.Instruction, error) {
	instructions, err := e.catalog.Instructions(ctx)
	if err != nil {
		return nil, catalogError(err)
	}
	return instructions, nil
}

// Chat resolves req and returns the vendor's reply. Lookup failures are
// *api.APIError values; vendor failures are returned unchanged.
func (e *Engine) Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	providers, err := e.Providers(ctx)
	if err != nil {
		return nil, err
	}
	provider, ok := catalog.FindProvider(providers, req.ProviderID)
	if !ok {
		return nil, api.NewNotFoundError(fmt.Sprintf("Provider %s not found", req.ProviderID))
	}

	instructions, err := e.Instructions(ctx)
	if err != nil {
		return nil, err
	}
	instruction, ok := catalog.FindInstruction(instructions, req.InstructionID)
	if !ok {
		return nil, api.NewNotFoundError(fmt.Sprintf("Instruction set %s not found", req.InstructionID))
	}

	adapter, ok := e.vendors.Lookup(provider.Vendor)
	if !ok {
		return nil, api.NewUnsupportedVendorError(provider.Vendor)
	}

	params := e.EffectiveParameters(provider, instruction)
	debug.Log("engine", "resolved",
		"provider_id", provider.ID,
		"vendor", provider.Vendor,
		"model", provider.Model,
		"instruction_id", instruction.ID,
		"parameters", params,
	)

	start := time.Now()
	text, err := adapter.Respond(ctx, llmvendor.Request{
		Message:      req.Message,
		SystemPrompt: instruction.SystemPrompt,
		Model:        provider.Model,
		Parameters:   params,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		observability.ObserveVendorCall(provider.Vendor, provider.Model, "error", elapsed)
		return nil, err
	}
	observability.ObserveVendorCall(provider.Vendor, provider.Model, "ok", elapsed)

	return &api.ChatResponse{
		Response:       text,
		ConversationID: req.ConversationIDOrPlaceholder(),
	}, nil
}

// EffectiveParameters returns the engine defaults overlaid by the provider's
// default parameters, overlaid by the instruction set's parameters. The
// inputs are not modified.
func (e *Engine) EffectiveParameters(p catalog.Provider, in catalog.Instruction) catalog.Parameters {
	return e.cfg.defaults().Overlay(p.DefaultParameters).Overlay(in.Parameters)
}

func catalogError(err error) error {
	if errors.Is(err, catalog.ErrCatalogUnavailable) {
		return api.NewUnavailableError(err.Error())
	}
	return err
}
