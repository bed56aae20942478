package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, LLMHUB_CONFIG env, ./llmhub.yaml, /etc/llmhub/llmhub.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile returns the first of: configPath, $LLMHUB_CONFIG,
// ./llmhub.yaml, /etc/llmhub/llmhub.yaml that applies. Returns "" when no
// config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("LLMHUB_CONFIG"); envPath != "" {
		return envPath
	}
	for _, path := range []string{"llmhub.yaml", "/etc/llmhub/llmhub.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadYAMLFile parses path into cfg. Fields absent from the YAML keep their
// current values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables onto config fields.
// Unparseable numeric or boolean values are ignored.
func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("HOST", &cfg.Server.Host)
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	setString("LLMHUB_STATIC_DIR", &cfg.Server.StaticDir)
	if v := os.Getenv("LLMHUB_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	setString("LLMHUB_CATALOG_SOURCE", &cfg.Catalog.Source)
	setString("LLMHUB_PROVIDERS_FILE", &cfg.Catalog.ProvidersFile)
	setString("LLMHUB_INSTRUCTIONS_FILE", &cfg.Catalog.InstructionsFile)
	if v := os.Getenv("LLMHUB_CATALOG_STRICT"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.Catalog.Strict = strict
		}
	}
	setString("LLMHUB_POSTGRES_DSN", &cfg.Catalog.Postgres.DSN)

	setString("ANTHROPIC_API_KEY", &cfg.Vendors.Anthropic.APIKey)
	setString("ANTHROPIC_BASE_URL", &cfg.Vendors.Anthropic.BaseURL)
	setString("OPENAI_API_KEY", &cfg.Vendors.OpenAI.APIKey)
	setString("OPENAI_BASE_URL", &cfg.Vendors.OpenAI.BaseURL)

	if v := os.Getenv("LLMHUB_MCP_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.MCP.Enabled = enabled
		}
	}

	setString("LLMHUB_DEBUG", &cfg.Logging.Debug)
	setString("LLMHUB_LOG_LEVEL", &cfg.Logging.Level)
	setString("LLMHUB_LOG_FORMAT", &cfg.Logging.Format)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveFileReferences fills empty secret fields from their _file
// counterparts. File contents are trimmed of surrounding whitespace.
func resolveFileReferences(cfg *Config) error {
	refs := []struct {
		name  string
		file  string
		value *string
	}{
		{"catalog.postgres.dsn_file", cfg.Catalog.Postgres.DSNFile, &cfg.Catalog.Postgres.DSN},
		{"vendors.anthropic.api_key_file", cfg.Vendors.Anthropic.APIKeyFile, &cfg.Vendors.Anthropic.APIKey},
		{"vendors.openai.api_key_file", cfg.Vendors.OpenAI.APIKeyFile, &cfg.Vendors.OpenAI.APIKey},
	}
	for i := range cfg.Vendors.Compatible {
		c := &cfg.Vendors.Compatible[i]
		refs = append(refs, struct {
			name  string
			file  string
			value *string
		}{fmt.Sprintf("vendors.compatible[%d].api_key_file", i), c.APIKeyFile, &c.APIKey})
	}
	for _, ref := range refs {
		if ref.file == "" || *ref.value != "" {
			continue
		}
		val, err := readSecretFile(ref.file)
		if err != nil {
			return fmt.Errorf("%s: %w", ref.name, err)
		}
		*ref.value = val
	}
	return nil
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
