package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rhuss/llmhub/pkg/catalog"
	"github.com/rhuss/llmhub/pkg/hub"
	"github.com/rhuss/llmhub/pkg/llmvendor"
)

// report collects catalog problems. Errors make a catalog unusable for some
// requests; warnings flag entries that are shadowed or suspicious.
type report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func newValidateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the provider and instruction catalogs",
		Long: `Loads both catalogs in strict mode and reports unsupported vendor tags,
missing fields, malformed sampling parameters and duplicate ids. Duplicate ids
are warnings: the first entry wins at request time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := g.strictStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			providers, err := store.Providers(cmd.Context())
			if err != nil {
				return err
			}
			instructions, err := store.Instructions(cmd.Context())
			if err != nil {
				return err
			}

			r := validateCatalog(providers, instructions, hub.NewVendors(cfg.Vendors).Tags())
			if g.output == outputJSON {
				if err := writeJSON(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), r, len(providers), len(instructions))
			}
			if len(r.Errors) > 0 {
				return fmt.Errorf("catalog has %d error(s)", len(r.Errors))
			}
			return nil
		},
	}
}

func validateCatalog(providers []catalog.Provider, instructions []catalog.Instruction, vendorTags []string) report {
	r := report{Errors: []string{}, Warnings: []string{}}

	seen := map[string]int{}
	for i, p := range providers {
		if p.ID == "" {
			r.errorf("provider #%d: missing id", i+1)
			continue
		}
		seen[p.ID]++
		if seen[p.ID] == 2 {
			r.warnf("provider %q is defined more than once, the first entry wins", p.ID)
		}
		if !slices.Contains(vendorTags, p.Vendor) {
			r.errorf("provider %q: unsupported vendor %q", p.ID, p.Vendor)
		}
		if p.Model == "" {
			r.errorf("provider %q: missing model", p.ID)
		}
		if _, err := llmvendor.ReadSampling(p.Vendor, p.DefaultParameters); err != nil {
			r.errorf("provider %q: %s", p.ID, sampleError(err))
		}
	}

	seen = map[string]int{}
	for i, in := range instructions {
		if in.ID == "" {
			r.errorf("instruction set #%d: missing id", i+1)
			continue
		}
		seen[in.ID]++
		if seen[in.ID] == 2 {
			r.warnf("instruction set %q is defined more than once, the first entry wins", in.ID)
		}
		if in.SystemPrompt == "" {
			r.warnf("instruction set %q: empty system_prompt", in.ID)
		}
		if _, err := llmvendor.ReadSampling("", in.Parameters); err != nil {
			r.errorf("instruction set %q: %s", in.ID, sampleError(err))
		}
	}
	return r
}

func sampleError(err error) string {
	if ce, ok := err.(*llmvendor.CallError); ok {
		return ce.Message
	}
	return err.Error()
}

func printReport(w io.Writer, r report, providers, instructions int) {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	for _, e := range r.Errors {
		fmt.Fprintln(w, errStyle.Render("error:")+" "+e)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintln(w, warnStyle.Render("warning:")+" "+warn)
	}
	summary := fmt.Sprintf("%d provider(s), %d instruction set(s), %d error(s), %d warning(s)",
		providers, instructions, len(r.Errors), len(r.Warnings))
	if len(r.Errors) == 0 {
		summary = okStyle.Render("ok") + " " + summary
	}
	fmt.Fprintln(w, summary)
}
