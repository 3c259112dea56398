package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets AI agents convert transcripts through tools instead of spawning
CLI commands, which is cheaper when many files are processed in one session.

Available Tools:
  render_transcript   Convert a result file to a markdown call report
  detect_variant      Report which result schema a file carries

Example:
  ts-to-word serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return mcp.New(cfg).ServeStdio()
}
