package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

// Store applies the load-failure policy on top of a Source.
type Store struct {
	source Source
	strict bool
	logger *slog.Logger
	onFail func(catalog string, err error)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStrict makes load failures surface as ErrCatalogUnavailable instead of
// an empty catalog.
func WithStrict(strict bool) StoreOption {
	return func(s *Store) { s.strict = strict }
}

// WithLogger sets the logger used to report load failures.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFailureHook registers fn to be called on every failed load, before
// the failure policy is applied.
func WithFailureHook(fn func(catalog string, err error)) StoreOption {
	return func(s *Store) { s.onFail = fn }
}

// NewStore creates a Store reading from src.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		source: src,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers loads the provider catalog. Outside strict mode it never returns
// an error: failures are logged and yield an empty list.
func (s *Store) Providers(ctx context.Context) ([]Provider, error) {
	providers, err := s.source.LoadProviders(ctx)
	if err != nil {
		if err := s.fail(ctx, "providers", err); err != nil {
			return nil, err
		}
		return []Provider{}, nil
	}
	if providers == nil {
		providers = []Provider{}
	}
	return providers, nil
}

// Instructions loads the instruction catalog with the same policy as Providers.
func (s *Store) Instructions(ctx context.Context) ([]Instruction, error) {
	instructions, err := s.source.LoadInstructions(ctx)
	if err != nil {
		if err := s.fail(ctx, "instructions", err); err != nil {
			return nil, err
		}
		return []Instruction{}, nil
	}
	if instructions == nil {
		instructions = []Instruction{}
	}
	return instructions, nil
}

// Strict reports whether load failures are surfaced.
func (s *Store) Strict() bool {
	return s.strict
}

func (s *Store) fail(ctx context.Context, catalog string, err error) error {
	if s.onFail != nil {
		s.onFail(catalog, err)
	}
	s.logger.ErrorContext(ctx, "error loading catalog",
		slog.String("catalog", catalog),
		slog.String("error", err.Error()),
	)
	if s.strict {
		return fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, catalog, err)
	}
	return nil
}
