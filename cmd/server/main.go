// Command server runs the llmhub chat gateway.
//
// Configuration is read from a YAML file (see llmhub.yaml.example) with
// environment overrides. A .env file in the working directory is loaded
// first when present.
//
//	HOST, PORT                      - listen address (default: localhost:8000)
//	ANTHROPIC_API_KEY               - Anthropic credential
//	OPENAI_API_KEY                  - OpenAI credential
//	LLMHUB_PROVIDERS_FILE           - provider catalog (default: config/providers.json)
//	LLMHUB_INSTRUCTIONS_FILE        - instruction catalog (default: config/instructions.json)
//	LLMHUB_CATALOG_SOURCE           - "file" or "postgres"
//	LLMHUB_DEBUG, LLMHUB_LOG_LEVEL  - debug categories and log level
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/config"
	"github.com/rhuss/llmhub/pkg/debug"
	"github.com/rhuss/llmhub/pkg/hub"
	"github.com/rhuss/llmhub/pkg/observability"
	"github.com/rhuss/llmhub/pkg/transport"
	transporthttp "github.com/rhuss/llmhub/pkg/transport/http"
	transportmcp "github.com/rhuss/llmhub/pkg/transport/mcp"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to llmhub.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	debug.Init(debug.Options{
		Categories: cfg.Logging.Debug,
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
	})

	h, err := hub.New(context.Background(), cfg,
		hub.WithStoreOptions(catalog.WithFailureHook(observability.CatalogLoadFailed)),
	)
	if err != nil {
		return err
	}
	defer h.Close()

	for _, tag := range hub.MissingCredentials(cfg.Vendors) {
		slog.Warn("vendor credential not set, requests will fail", "vendor", tag)
	}
	eng := h.Engine

	srv := transporthttp.NewServer(eng,
		transporthttp.WithAddr(cfg.Server.Addr()),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithStaticDir(cfg.Server.StaticDir),
		transporthttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)

	if cfg.Observability.Metrics.Enabled {
		srv.Mount("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}
	if cfg.MCP.Enabled {
		mcpServer := transportmcp.NewServer(eng, version,
			transport.Recovery(),
			transport.RequestID(),
			transport.Logging(nil),
		)
		srv.MountMethods(cfg.MCP.Path, mcpServer.Handler(),
			http.MethodGet, http.MethodPost, http.MethodDelete,
		)
		slog.Info("mcp endpoint enabled", "path", cfg.MCP.Path)
	}
	srv.WrapHandler(observability.MetricsMiddleware)

	slog.Info("llmhub starting",
		"version", version,
		"addr", srv.Addr(),
		"catalog", cfg.Catalog.Source,
		"strict", cfg.Catalog.Strict,
		"vendors", h.Vendors.Tags(),
	)
	return srv.ListenAndServe()
}
