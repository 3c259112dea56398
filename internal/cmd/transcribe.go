package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/config"
)

// transcribeCmd handles standard and call-analytics Transcribe output.
var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Convert Amazon Transcribe output (standard or call analytics)",
	Long: `Convert a standard Amazon Transcribe or Transcribe Call Analytics result
document into a call report.

The input comes either from a local result file or from a completed
transcription job looked up by name. When a job is used, its status metadata
fills the report's summary section; a job the service no longer knows about
degrades the summary to placeholders instead of failing.

Examples:
  ts-to-word transcribe --inputFile callrecord.json
  ts-to-word transcribe --inputJob my-job --outputFile report.md
  ts-to-word transcribe --inputFile callrecord.json --sentiment on --confidence on`,
	RunE: runTranscribe,
}

var (
	transcribeInputFile  string
	transcribeInputJob   string
	transcribeOutputFile string
	transcribeSentiment  string
	transcribeConfidence string
	transcribeKeep       bool
)

func init() {
	transcribeCmd.Flags().StringVar(&transcribeInputFile, "inputFile", "", "Path to the Transcribe result JSON file")
	transcribeCmd.Flags().StringVar(&transcribeInputJob, "inputJob", "", "Name of a completed transcription job to fetch")
	transcribeCmd.Flags().StringVar(&transcribeOutputFile, "outputFile", "", "Output document path (default: derived from the input name)")
	transcribeCmd.Flags().StringVar(&transcribeSentiment, "sentiment", "off", "Classify segment sentiment via the enrichment service (on|off)")
	transcribeCmd.Flags().StringVar(&transcribeConfidence, "confidence", "off", "Include the word confidence section (on|off)")
	transcribeCmd.Flags().BoolVar(&transcribeKeep, "keep", false, "Keep the sentiment result cache across runs")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	sentiment, err := onOff("sentiment", transcribeSentiment)
	if err != nil {
		return err
	}
	confidence, err := onOff("confidence", transcribeConfidence)
	if err != nil {
		return err
	}

	opts := config.Options{
		Mode:           config.ModeTranscribe,
		InputFile:      transcribeInputFile,
		InputJob:       transcribeInputJob,
		OutputFile:     transcribeOutputFile,
		Sentiment:      sentiment,
		Confidence:     confidence,
		Keep:           transcribeKeep,
		GuardrailLimit: 0.20,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return runPipeline(cmd.Context(), cfg, opts, os.Stdout)
}
