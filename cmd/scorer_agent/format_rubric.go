package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-scorer/internal/rubric"
)

var formatRubricCmd = &cobra.Command{
	Use:   "format-rubric [rubric file]",
	Short: "Convert a rubric file into the canonical JSON schema",
	Long: `Reads a rubric in any supported format (.json, .xlsx, .txt, .csv, .md) and
emits the canonical JSON rubric. Already-canonical JSON passes through
untouched; everything else is normalized via the generative text service.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormatRubricCmd,
}

var (
	formatConfigPath string
	formatAPIKey     string
	formatOut        string
)

func init() {
	formatRubricCmd.Flags().StringVar(&formatConfigPath, "config", "", "Path to config.json file")
	formatRubricCmd.Flags().StringVar(&formatAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	formatRubricCmd.Flags().StringVarP(&formatOut, "out", "o", "", "Write canonical rubric to this file (default: stdout)")

	rootCmd.AddCommand(formatRubricCmd)
}

func runFormatRubricCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(formatConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = formatAPIKey
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read rubric file: %w", err)
	}
	in, err := rubric.ParseUpload(args[0], data)
	if err != nil {
		return err
	}

	canonical := in.Canonical
	if in.NeedsNormalization() {
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		canonical, err = rubric.NewNormalizer(client, rubric.DefaultMaxAttempts).Normalize(ctx, in.Raw)
		if err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return err
	}

	if formatOut != "" {
		if err := os.WriteFile(formatOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", formatOut, err)
		}
		fmt.Printf("Canonical rubric written to %s\n", formatOut)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
