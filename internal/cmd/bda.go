package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/config"
)

// bdaCmd handles Bedrock Data Automation audio output.
var bdaCmd = &cobra.Command{
	Use:   "bda",
	Short: "Convert Bedrock Data Automation audio output",
	Long: `Convert a Bedrock Data Automation audio result document into a call
report.

BDA results carry an abstractive summary, topics, entities and content
moderation scores. Supplying --customFile with the matching custom blueprint
inference result adds the assessment tables, rating dials and sentiment
narratives to the report.

Examples:
  ts-to-word bda --inputFile result.json
  ts-to-word bda --inputFile result.json --customFile custom_output.json
  ts-to-word bda --inputFile result.json --guardrailCheck on --guardrailLimit 0.35`,
	RunE: runBDA,
}

var (
	bdaInputFile      string
	bdaOutputFile     string
	bdaCustomFile     string
	bdaSentiment      string
	bdaGuardrailCheck string
	bdaGuardrailLimit float64
)

func init() {
	bdaCmd.Flags().StringVar(&bdaInputFile, "inputFile", "", "Path to the BDA result JSON file")
	bdaCmd.Flags().StringVar(&bdaOutputFile, "outputFile", "", "Output document path (default: derived from the input name)")
	bdaCmd.Flags().StringVar(&bdaCustomFile, "customFile", "", "Path to the custom blueprint inference result")
	bdaCmd.Flags().StringVar(&bdaSentiment, "sentiment", "off", "Classify segment sentiment via the enrichment service (on|off)")
	bdaCmd.Flags().StringVar(&bdaGuardrailCheck, "guardrailCheck", "off", "Include the guardrail breach section (on|off)")
	bdaCmd.Flags().Float64Var(&bdaGuardrailLimit, "guardrailLimit", 0.20, "Inclusive confidence limit for guardrail breaches [0.00,1.00]")
	rootCmd.AddCommand(bdaCmd)
}

func runBDA(cmd *cobra.Command, args []string) error {
	sentiment, err := onOff("sentiment", bdaSentiment)
	if err != nil {
		return err
	}
	guardrail, err := onOff("guardrailCheck", bdaGuardrailCheck)
	if err != nil {
		return err
	}

	opts := config.Options{
		Mode:           config.ModeBDA,
		InputFile:      bdaInputFile,
		OutputFile:     bdaOutputFile,
		CustomFile:     bdaCustomFile,
		Sentiment:      sentiment,
		GuardrailCheck: guardrail,
		GuardrailLimit: bdaGuardrailLimit,
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
