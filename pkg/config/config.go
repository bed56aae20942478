// Package config provides unified configuration for llmhub.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (HOST, PORT, vendor keys, LLMHUB_*)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// This is the only package that reads the process environment for
// credentials. Vendor adapters receive their keys from here.
package config

import (
	"net"
	"strconv"
	"time"
)

// Catalog source types.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configuration for llmhub.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Vendors       VendorsConfig       `yaml:"vendors"`
	Engine        EngineConfig        `yaml:"engine"`
	MCP           MCPConfig           `yaml:"mcp"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`             // default: "localhost"
	Port            int           `yaml:"port"`             // default: 8000
	StaticDir       string        `yaml:"static_dir"`       // default: "frontend"
	CORSOrigins     []string      `yaml:"cors_origins"`     // default: all
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CatalogConfig selects where providers and instruction sets are read from.
type CatalogConfig struct {
	Source           string         `yaml:"source"`            // "file" or "postgres", default: "file"
	ProvidersFile    string         `yaml:"providers_file"`    // default: config/providers.json
	InstructionsFile string         `yaml:"instructions_file"` // default: config/instructions.json
	Strict           bool           `yaml:"strict"`            // surface load failures as 503
	Postgres         PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 10
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// VendorsConfig holds per-vendor adapter settings.
type VendorsConfig struct {
	Anthropic AnthropicConfig `yaml:"anthropic"`
	OpenAI    OpenAIConfig    `yaml:"openai"`

	// Compatible registers extra vendor tags served by OpenAI-compatible
	// endpoints such as vLLM or LiteLLM.
	Compatible []CompatibleConfig `yaml:"compatible"`
}

// AnthropicConfig configures the Anthropic adapter.
type AnthropicConfig struct {
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"`
	BaseURL    string        `yaml:"base_url"`
	Version    string        `yaml:"version"`
	Timeout    time.Duration `yaml:"timeout"` // default: 120s
}

// OpenAIConfig configures the OpenAI adapter.
type OpenAIConfig struct {
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"` // default: 120s
}

// CompatibleConfig configures one OpenAI-compatible vendor tag. The API key
// is optional.
type CompatibleConfig struct {
	Name       string        `yaml:"name"`
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"`
	Timeout    time.Duration `yaml:"timeout"` // default: 120s
}

// EngineConfig holds request resolution settings.
type EngineConfig struct {
	// DefaultParameters is layered over the built-in base parameters
	// (temperature 0.7, max_tokens 1000).
	DefaultParameters map[string]any `yaml:"default_parameters"`
}

// MCPConfig controls the MCP tool endpoint.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Path    string `yaml:"path"`    // default: "/mcp"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds log output settings. LLMHUB_DEBUG, LLMHUB_LOG_LEVEL
// and LLMHUB_LOG_FORMAT override these.
type LoggingConfig struct {
	Debug  string `yaml:"debug"`  // comma-separated debug categories
	Level  string `yaml:"level"`  // default: "INFO"
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8000,
			StaticDir:       "frontend",
			MaxBodySize:     1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:           SourceFile,
			ProvidersFile:    "config/providers.json",
			InstructionsFile: "config/instructions.json",
			Postgres: PostgresConfig{
				MaxConns: 10,
			},
		},
		Vendors: VendorsConfig{
			Anthropic: AnthropicConfig{Timeout: 120 * time.Second},
			OpenAI:    OpenAIConfig{Timeout: 120 * time.Second},
		},
		MCP: MCPConfig{
			Path: "/mcp",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}
