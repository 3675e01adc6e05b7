package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-scorer/internal/pipeline"
	"github.com/jonathan/transcript-scorer/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for scoring transcripts.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	metricsEngine := newMetricsEngine(cfg)
	var opts []pipeline.Option
	if cfg.MaxRetries > 0 {
		opts = append(opts, pipeline.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.MaxScoreRetries > 0 {
		opts = append(opts, pipeline.WithScoreAttempts(cfg.MaxScoreRetries))
	}
	coord := pipeline.NewCoordinator(client, metricsEngine, opts...)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
	}, coord, metricsEngine)

	return srv.Start()
}
