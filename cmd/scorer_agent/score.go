package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/transcript-scorer/internal/ingestion"
	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/pipeline"
	"github.com/jonathan/transcript-scorer/internal/rubric"
)

// scoreConcurrency bounds parallel transcript jobs in batch mode. Each job
// may hold several in-flight service calls across its retries.
const scoreConcurrency = 4

var scoreCmd = &cobra.Command{
	Use:   "score [transcript files...]",
	Short: "Score one or more transcripts against a rubric",
	Long: `Runs the full scoring pipeline for each transcript: deterministic linguistic
metrics, rubric normalization when needed, then rubric-guided scoring through
the generative text service.

Transcripts may be plain text (.txt, .md) or PDF. Without --rubric the
embedded default public-speaking rubric is used.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.ArbitraryArgs,
	RunE: runScoreCmd,
}

var (
	scoreConfigPath string
	scoreTranscript string
	scoreRubricPath string
	scoreDuration   int
	scoreAPIKey     string
	scoreLTURL      string
	scoreOutDir     string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVarP(&scoreTranscript, "transcript", "t", "", "Path to transcript file (alternative to positional args)")
	scoreCmd.Flags().StringVarP(&scoreRubricPath, "rubric", "r", "", "Path to rubric file (.json, .xlsx, .txt, .csv, .md)")
	scoreCmd.Flags().IntVarP(&scoreDuration, "duration", "d", 0, "Recording duration in seconds (0 disables pace scoring)")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCmd.Flags().StringVar(&scoreLTURL, "languagetool-url", "", "LanguageTool base URL (optional, defaults to LANGUAGETOOL_URL env var)")
	scoreCmd.Flags().StringVarP(&scoreOutDir, "out", "o", "", "Directory for per-transcript result JSON files (default: stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print metric and score breakdowns")

	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(scoreConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if cmd.Flags().Changed("languagetool-url") {
		cfg.LanguageToolURL = scoreLTURL
	}
	if cmd.Flags().Changed("duration") {
		cfg.DurationSeconds = scoreDuration
	}
	if cmd.Flags().Changed("rubric") {
		cfg.Rubric = scoreRubricPath
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scoreVerbose
	}

	paths := args
	if scoreTranscript != "" {
		paths = append(paths, scoreTranscript)
	}
	if cfg.Transcript != "" && len(paths) == 0 {
		paths = []string{cfg.Transcript}
	}
	if len(paths) == 0 {
		return fmt.Errorf("at least one transcript file is required (positional arg, --transcript, or config)")
	}

	rubricInput, err := loadRubricInput(cfg.Rubric)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	printer := observability.NewPrinter(os.Stdout)
	var opts []pipeline.Option
	if cfg.MaxRetries > 0 {
		opts = append(opts, pipeline.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.MaxScoreRetries > 0 {
		opts = append(opts, pipeline.WithScoreAttempts(cfg.MaxScoreRetries))
	}
	if cfg.Verbose && len(paths) == 1 {
		opts = append(opts, pipeline.WithProgress(printer.PrintProgress))
	}
	coord := pipeline.NewCoordinator(client, newMetricsEngine(cfg), opts...)

	if len(paths) == 1 {
		return scoreOne(ctx, coord, printer, cfg.Verbose, paths[0], rubricInput, cfg.DurationSeconds)
	}

	// Batch mode: score transcripts concurrently. Results go to --out or are
	// printed one JSON document per line.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for _, path := range paths {
		g.Go(func() error {
			return scoreOne(gctx, coord, printer, false, path, rubricInput, cfg.DurationSeconds)
		})
	}
	return g.Wait()
}

func scoreOne(ctx context.Context, coord *pipeline.Coordinator, printer *observability.Printer, verbose bool, path string, rubricInput *rubric.Input, durationSeconds int) error {
	transcript, err := ingestion.ExtractFromFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	resp, err := coord.Process(ctx, pipeline.Request{
		Transcript:      transcript,
		Rubric:          rubricInput,
		DurationSeconds: durationSeconds,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if verbose {
		printer.PrintMetrics(resp.Metrics)
		printer.PrintResult(resp.Result)
		printer.PrintFeedback(resp.Result)
	}

	out, err := json.MarshalIndent(resp.Result, "", "  ")
	if err != nil {
		return err
	}

	if scoreOutDir != "" {
		if err := os.MkdirAll(scoreOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		target := filepath.Join(scoreOutDir, base+".score.json")
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		fmt.Printf("%s -> %s (%.1f/100)\n", path, target, resp.Result.OverallScore)
		return nil
	}

	fmt.Println(string(out))
	return nil
}

// loadRubricInput reads and classifies the rubric file. A nil result selects
// the embedded default rubric.
func loadRubricInput(path string) (*rubric.Input, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file: %w", err)
	}
	in, err := rubric.ParseUpload(path, data)
	if err != nil {
		return nil, err
	}
	return &in, nil
}
