package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rhuss/llmhub/pkg/catalog"
)

func newProvidersCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := g.strictStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			providers, err := store.Providers(cmd.Context())
			if err != nil {
				return err
			}
			if g.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), providers)
			}
			return printProviders(cmd.OutOrStdout(), providers)
		},
	}
}

func newInstructionsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "instructions",
		Short: "List configured instruction sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := g.strictStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			instructions, err := store.Instructions(cmd.Context())
			if err != nil {
				return err
			}
			if g.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), instructions)
			}
			return printInstructions(cmd.OutOrStdout(), instructions)
		},
	}
}

func printProviders(w io.Writer, providers []catalog.Provider) error {
	t := newTable("ID", "VENDOR", "MODEL", "DEFAULT PARAMETERS")
	for _, p := range providers {
		t.Row(p.ID, p.Vendor, p.Model, formatParameters(p.DefaultParameters))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func printInstructions(w io.Writer, instructions []catalog.Instruction) error {
	t := newTable("ID", "NAME", "SYSTEM PROMPT", "PARAMETERS")
	for _, in := range instructions {
		t.Row(in.ID, in.Name, truncate(in.SystemPrompt, 60), formatParameters(in.Parameters))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// formatParameters renders parameters as sorted key=value pairs.
func formatParameters(p catalog.Parameters) string {
	if len(p) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := json.Marshal(p[k])
		parts = append(parts, k+"="+string(v))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
