package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/hub"
)

func newImportCmd(g *globals) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the PostgreSQL catalog with the JSON catalog files",
		Long: `Reads catalog.providers_file and catalog.instructions_file and writes
them to the PostgreSQL catalog in one transaction, replacing its contents.
File order is kept so first-match-wins lookups behave the same.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if dsn != "" {
				cfg.Catalog.Postgres.DSN = dsn
			}
			if cfg.Catalog.Postgres.DSN == "" {
				return fmt.Errorf("a PostgreSQL DSN is required: use --dsn, LLMHUB_POSTGRES_DSN or catalog.postgres.dsn")
			}

			files := catalog.NewFileSource(cfg.Catalog.ProvidersFile, cfg.Catalog.InstructionsFile)
			providers, err := files.LoadProviders(cmd.Context())
			if err != nil {
				return err
			}
			instructions, err := files.LoadInstructions(cmd.Context())
			if err != nil {
				return err
			}

			cfg.Catalog.Postgres.MigrateOnStart = true
			db, err := hub.OpenPostgres(cmd.Context(), cfg.Catalog)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Import(cmd.Context(), providers, instructions); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d provider(s) and %d instruction set(s)\n",
				len(providers), len(instructions))
			return err
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (overrides config)")
	return cmd
}
