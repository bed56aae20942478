package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.ProvidersFile == "" {
			errs = append(errs, fmt.Errorf("catalog.providers_file is required when catalog.source is %q", SourceFile))
		}
		if c.Catalog.InstructionsFile == "" {
			errs = append(errs, fmt.Errorf("catalog.instructions_file is required when catalog.source is %q", SourceFile))
		}
	case SourcePostgres:
		if c.Catalog.Postgres.DSN == "" && c.Catalog.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("catalog.postgres.dsn or catalog.postgres.dsn_file is required when catalog.source is %q", SourcePostgres))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be %q or %q, got %q", SourceFile, SourcePostgres, c.Catalog.Source))
	}

	if c.Vendors.Anthropic.Timeout < 0 {
		errs = append(errs, fmt.Errorf("vendors.anthropic.timeout must not be negative"))
	}
	if c.Vendors.OpenAI.Timeout < 0 {
		errs = append(errs, fmt.Errorf("vendors.openai.timeout must not be negative"))
	}

	seen := map[string]bool{"anthropic": true, "openai": true}
	for i, v := range c.Vendors.Compatible {
		switch {
		case v.Name == "":
			errs = append(errs, fmt.Errorf("vendors.compatible[%d].name is required", i))
		case seen[v.Name]:
			errs = append(errs, fmt.Errorf("vendors.compatible[%d].name %q is already registered", i, v.Name))
		}
		seen[v.Name] = true
		if v.BaseURL == "" {
			errs = append(errs, fmt.Errorf("vendors.compatible[%d].base_url is required", i))
		}
		if v.Timeout < 0 {
			errs = append(errs, fmt.Errorf("vendors.compatible[%d].timeout must not be negative", i))
		}
	}

	if c.MCP.Enabled && !strings.HasPrefix(c.MCP.Path, "/") {
		errs = append(errs, fmt.Errorf("mcp.path must start with \"/\", got %q", c.MCP.Path))
	}
	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
