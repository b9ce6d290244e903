// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-check/internal/pipeline"
	"github.com/pdiddy/cite-check/internal/report"
	"github.com/pdiddy/cite-check/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check citations against APA 7 formatting rules",
	Long: `Validate reads citation text from a file (or stdin when no file is given),
one citation per blank-line-separated block, checks each against the APA 7
rule set, applies safe automatic corrections, and reports violations,
reconstructed entries, and compliance scores.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("enrich", false, "look up external metadata on CrossRef")
	validateCmd.Flags().Bool("json", false, "output results as JSON")
	validateCmd.Flags().Bool("csl", false, "output corrected citations as CSL-YAML")
	validateCmd.Flags().Duration("timeout", 0, "enrichment request timeout (default 30s)")
	validateCmd.Flags().Duration("delay", 0, "pause between enrichment lookups (default 1s)")
	validateCmd.Flags().String("cache", "", "path to the enrichment lookup cache database")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	// The config file can enable enrichment by default; the flag wins
	// when given.
	var fileCfg types.PipelineConfig
	_ = viper.Unmarshal(&fileCfg)

	opts := pipeline.Options{}
	doEnrich, _ := cmd.Flags().GetBool("enrich")
	if !cmd.Flags().Changed("enrich") {
		doEnrich = fileCfg.Enrichment.Enabled
	}
	if doEnrich {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		delay, _ := cmd.Flags().GetDuration("delay")
		cachePath, _ := cmd.Flags().GetString("cache")

		logger := newLogger()
		defer logger.Sync()

		enricher, cleanup, err := newEnricher(enrichmentConfig(timeout, delay, cachePath), logger)
		if err != nil {
			return err
		}
		defer cleanup()

		opts.Enrich = true
		opts.Enricher = enricher
	}

	results, err := pipeline.Validate(cmd.Context(), text, opts)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	asCSL, _ := cmd.Flags().GetBool("csl")
	switch {
	case asJSON:
		return report.FormatJSON(results, os.Stdout)
	case asCSL:
		return report.FormatCSL(results, os.Stdout)
	default:
		report.FormatText(results, os.Stdout)
		return nil
	}
}

// readInput reads citation text from the named file, or from stdin when
// no file argument was given.
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
