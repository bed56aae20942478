// Package postgres provides a PostgreSQL implementation of catalog.Source.
// Providers and instruction sets live in two tables with JSONB parameter
// columns and are queried on every load, in insertion order.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhuss/llmhub/pkg/catalog"
)

// Source reads the catalogs from PostgreSQL.
type Source struct {
	pool *pgxpool.Pool
}

var _ catalog.Source = (*Source)(nil)

// New connects to PostgreSQL and, when cfg.MigrateOnStart is set, creates
// the catalog tables.
func New(ctx context.Context, cfg Config) (*Source, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Source{pool: pool}
	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}
	return s, nil
}

// LoadProviders implements catalog.Source.
func (s *Source) LoadProviders(ctx context.Context) ([]catalog.Provider, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, vendor, model, default_parameters
		FROM providers
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying providers: %w", err)
	}

	providers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Provider, error) {
		var (
			p      catalog.Provider
			params []byte
		)
		if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Vendor, &p.Model, &params); err != nil {
			return p, err
		}
		p.DefaultParameters, err = decodeParameters(params)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning providers: %w", err)
	}
	return providers, nil
}

// LoadInstructions implements catalog.Source.
func (s *Source) LoadInstructions(ctx context.Context) ([]catalog.Instruction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, system_prompt, parameters
		FROM instructions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying instructions: %w", err)
	}

	instructions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Instruction, error) {
		var (
			in     catalog.Instruction
			params []byte
		)
		if err := row.Scan(&in.ID, &in.Name, &in.Description, &in.SystemPrompt, &params); err != nil {
			return in, err
		}
		in.Parameters, err = decodeParameters(params)
		return in, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning instructions: %w", err)
	}
	return instructions, nil
}

// Import replaces both catalogs in a single transaction. Slice order becomes
// lookup order.
func (s *Source) Import(ctx context.Context, providers []catalog.Provider, instructions []catalog.Instruction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE providers, instructions RESTART IDENTITY"); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	for _, p := range providers {
		params, err := encodeParameters(p.DefaultParameters)
		if err != nil {
			return fmt.Errorf("provider %q: %w", p.ID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO providers (id, name, description, vendor, model, default_parameters)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.Name, p.Description, p.Vendor, p.Model, params); err != nil {
			return fmt.Errorf("inserting provider %q: %w", p.ID, err)
		}
	}

	for _, in := range instructions {
		params, err := encodeParameters(in.Parameters)
		if err != nil {
			return fmt.Errorf("instruction %q: %w", in.ID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO instructions (id, name, description, system_prompt, parameters)
			VALUES ($1, $2, $3, $4, $5)
		`, in.ID, in.Name, in.Description, in.SystemPrompt, params); err != nil {
			return fmt.Errorf("inserting instruction %q: %w", in.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing catalog import: %w", err)
	}
	return nil
}

// HealthCheck verifies the database connection.
func (s *Source) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Source) Close() error {
	s.pool.Close()
	return nil
}

func decodeParameters(raw []byte) (catalog.Parameters, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var params catalog.Parameters
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("decoding parameters: %w", err)
	}
	return params, nil
}

// encodeParameters returns nil for empty maps so the column stays NULL.
func encodeParameters(params catalog.Parameters) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	return json.Marshal(params)
}
