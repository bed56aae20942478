// Package hub assembles the catalog, vendor registry and engine from a
// loaded configuration. The server and the hubctl CLI share it.
package hub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/catalog/postgres"
	"github.com/rhuss/llmhub/pkg/config"
	"github.com/rhuss/llmhub/pkg/engine"
	"github.com/rhuss/llmhub/pkg/llmvendor"
	"github.com/rhuss/llmhub/pkg/llmvendor/anthropic"
	"github.com/rhuss/llmhub/pkg/llmvendor/openai"
)

// Hub holds the assembled components.
type Hub struct {
	Engine  *engine.Engine
	Store   *catalog.Store
	Vendors llmvendor.Registry

	closeSource func()
}

// Option adjusts assembly.
type Option func(*options)

type options struct {
	storeOpts []catalog.StoreOption
	source    catalog.Source
}

// WithStoreOptions appends options to the catalog store, such as a
// failure hook. Strict mode always comes from the configuration.
func WithStoreOptions(opts ...catalog.StoreOption) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

// WithSource replaces the configured catalog source.
func WithSource(src catalog.Source) Option {
	return func(o *options) { o.source = src }
}

// New builds a Hub. Callers must Close it.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Hub, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	src, closeSource := o.source, func() {}
	if src == nil {
		var err error
		src, closeSource, err = NewSource(ctx, cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}

	storeOpts := append([]catalog.StoreOption{catalog.WithStrict(cfg.Catalog.Strict)}, o.storeOpts...)
	store := catalog.NewStore(src, storeOpts...)
	vendors := NewVendors(cfg.Vendors)

	eng, err := engine.New(store, vendors, engine.Config{
		Defaults: cfg.Engine.DefaultParameters,
	})
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &Hub{
		Engine:      eng,
		Store:       store,
		Vendors:     vendors,
		closeSource: closeSource,
	}, nil
}

// Close releases the catalog source.
func (h *Hub) Close() {
	h.closeSource()
}

// NewSource builds the configured catalog backend. The returned function
// releases its resources.
func NewSource(ctx context.Context, cfg config.CatalogConfig) (catalog.Source, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		src, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("catalog source", "type", "postgres")
		return src, func() { src.Close() }, nil
	default:
		slog.Debug("catalog source", "type", "file",
			"providers", cfg.ProvidersFile,
			"instructions", cfg.InstructionsFile,
		)
		return catalog.NewFileSource(cfg.ProvidersFile, cfg.InstructionsFile), func() {}, nil
	}
}

// OpenPostgres connects to the configured PostgreSQL catalog.
func OpenPostgres(ctx context.Context, cfg config.CatalogConfig) (*postgres.Source, error) {
	src, err := postgres.New(ctx, postgres.Config{
		DSN:            cfg.Postgres.DSN,
		MaxConns:       cfg.Postgres.MaxConns,
		MigrateOnStart: cfg.Postgres.MigrateOnStart,
	})
	if err != nil {
		return nil, fmt.Errorf("creating postgres catalog: %w", err)
	}
	return src, nil
}

// NewVendors builds the vendor registry. Adapters are registered even
// without a key; a missing credential is reported per request.
func NewVendors(cfg config.VendorsConfig) llmvendor.Registry {
	reg := llmvendor.Registry{
		anthropic.Name: anthropic.New(anthropic.Config{
			APIKey:  cfg.Anthropic.APIKey,
			BaseURL: cfg.Anthropic.BaseURL,
			Version: cfg.Anthropic.Version,
			Timeout: cfg.Anthropic.Timeout,
		}),
		openai.Name: openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout,
		}),
	}
	for _, c := range cfg.Compatible {
		reg[c.Name] = openai.New(openai.Config{
			APIKey:      c.APIKey,
			BaseURL:     c.BaseURL,
			Timeout:     c.Timeout,
			Vendor:      c.Name,
			KeyOptional: true,
		})
	}
	return reg
}

// MissingCredentials lists vendor tags configured without an API key.
func MissingCredentials(cfg config.VendorsConfig) []string {
	var missing []string
	if cfg.Anthropic.APIKey == "" {
		missing = append(missing, anthropic.Name)
	}
	if cfg.OpenAI.APIKey == "" {
		missing = append(missing, openai.Name)
	}
	return missing
}
