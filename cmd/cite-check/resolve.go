// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-check/internal/enrich"
	"github.com/pdiddy/cite-check/internal/fix"
	"github.com/pdiddy/cite-check/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <doi>",
	Short: "Look up the metadata registered for a DOI",
	Long: `Resolve fetches the CrossRef record for a bare DOI and prints it, either
as JSON or as a formatted APA 7 reference entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Bool("json", false, "output the raw record as JSON")
	resolveCmd.Flags().Duration("timeout", 0, "request timeout (default 30s)")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")

	logger := newLogger()
	defer logger.Sync()

	enricher, cleanup, err := newEnricher(enrichmentConfig(timeout, 0, ""), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := enricher.Client.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Println(fix.Format(recordToCitation(rec)))
	return nil
}

// recordToCitation maps a CrossRef record onto a citation so the
// reconstructor can render it as an APA 7 entry.
func recordToCitation(rec *enrich.Record) types.Citation {
	c := types.Citation{
		Authors:   rec.Authors,
		Year:      rec.Year,
		Title:     rec.Title,
		Source:    rec.ContainerTitle,
		Volume:    rec.Volume,
		Issue:     rec.Issue,
		Pages:     rec.Pages,
		Publisher: rec.Publisher,
		Editors:   rec.Editors,
		Edition:   rec.Edition,
		Type:      types.TypeUnknown,
	}
	if t, ok := enrich.MapType(rec.Type); ok {
		c.Type = t
	}
	if c.Type == types.TypeChapter && c.Source != "" {
		c.Source = "In " + c.Source
	}
	if rec.DOI != "" {
		c.DOI = "https://doi.org/" + rec.DOI
	}
	return c
}
