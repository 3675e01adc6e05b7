package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-scorer/internal/ingestion"
	"github.com/jonathan/transcript-scorer/internal/observability"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [transcript file]",
	Short: "Compute deterministic metrics for a transcript",
	Long: `Computes the deterministic linguistic metrics (pace, vocabulary richness,
filler density, grammar, sentiment, salutation, keywords, flow) without
calling the generative text service. No API key is required.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetricsCmd,
}

var (
	metricsConfigPath string
	metricsDuration   int
	metricsLTURL      string
	metricsVerbose    bool
)

func init() {
	metricsCmd.Flags().StringVar(&metricsConfigPath, "config", "", "Path to config.json file")
	metricsCmd.Flags().IntVarP(&metricsDuration, "duration", "d", 0, "Recording duration in seconds (0 disables pace scoring)")
	metricsCmd.Flags().StringVar(&metricsLTURL, "languagetool-url", "", "LanguageTool base URL (optional, defaults to LANGUAGETOOL_URL env var)")
	metricsCmd.Flags().BoolVarP(&metricsVerbose, "verbose", "v", false, "Print a formatted breakdown instead of raw JSON")

	rootCmd.AddCommand(metricsCmd)
}

func runMetricsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(metricsConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("languagetool-url") {
		cfg.LanguageToolURL = metricsLTURL
	}
	if cmd.Flags().Changed("duration") {
		cfg.DurationSeconds = metricsDuration
	}

	transcript, err := ingestion.ExtractFromFile(args[0])
	if err != nil {
		return err
	}

	bundle, err := newMetricsEngine(cfg).Compute(context.Background(), transcript, cfg.DurationSeconds)
	if err != nil {
		return err
	}

	if metricsVerbose {
		observability.NewPrinter(os.Stdout).PrintMetrics(bundle)
		return nil
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
