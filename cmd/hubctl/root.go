package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/config"
	"github.com/rhuss/llmhub/pkg/hub"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	output     string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:          "hubctl",
		Short:        "Inspect and manage the llmhub catalog",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.output != outputTable && g.output != outputJSON {
				return fmt.Errorf("--output must be %q or %q", outputTable, outputJSON)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "path to llmhub.yaml")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", outputTable, "output format: table or json")

	root.AddCommand(
		newProvidersCmd(g),
		newInstructionsCmd(g),
		newValidateCmd(g),
		newChatCmd(g),
		newImportCmd(g),
	)
	return root
}

func (g *globals) loadConfig() (*config.Config, error) {
	return config.Load(g.configPath)
}

// strictStore opens the configured catalog so that load failures are
// reported instead of read as an empty list.
func (g *globals) strictStore(ctx context.Context) (*catalog.Store, func(), error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	src, closeSource, err := hub.NewSource(ctx, cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStore(src, catalog.WithStrict(true)), closeSource, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
