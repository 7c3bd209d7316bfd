// Package cmd implements the resumesite CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumesite",
	Short: "Personal resume website with a question-answering assistant",
	Long: `resumesite serves a personal resume page backed by a small JSON data set,
plus an assistant endpoint that answers free-form questions about the resume
using retrieval over the full resume and FAQ documents.

Running resumesite without a subcommand starts the server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
