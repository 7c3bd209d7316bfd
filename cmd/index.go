package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoeBee/resumesite/internal/config"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the retrieval index from the resume documents",
	Long: `Rebuild the persisted vector index from the full resume and FAQ documents.

The server rebuilds the index on its own when the documents change; this
command forces a rebuild up front so the first visitor question does not pay
the indexing cost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIndex(cmd)
	},
}

func init() {
	indexCmd.Flags().Bool("json", false, "log in JSON format")
	indexCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !config.HasAPIKey() {
		return errors.New("indexing needs GEMINI_API_KEY or GOOGLE_API_KEY for the embedder")
	}

	logger := newLogger(cmd)

	engine, err := buildEngine(cmd.Context(), cfg, newLoader(cfg), logger)
	if err != nil {
		return fmt.Errorf("initializing question answering: %w", err)
	}

	n, err := engine.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	logger.Info("index rebuilt", "passages", n, "dir", cfg.IndexDir)
	return nil
}
