// Package cmd contains all CLI commands for ts-to-word.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the current version of ts-to-word
var Version = "0.1.0"

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ts-to-word",
	Short: "Turn speech-analytics results into readable call documents",
	Long: `ts-to-word converts speech-analytics result documents into a formatted
call report.

It understands three input families and normalizes them into one canonical
conversation model before rendering:
  - standard Amazon Transcribe output
  - Transcribe Call Analytics post-call output
  - Bedrock Data Automation audio output, optionally paired with a custom
    blueprint inference result

From the normalized conversation it computes talk time, interruptions,
word-confidence distributions, per-quarter sentiment, guardrail breaches and
entity groupings, then renders a multi-section document whose sections depend
on the detected input family and the enabled flags.

Examples:
  ts-to-word transcribe --inputFile callrecord.json --sentiment on
  ts-to-word transcribe --inputJob my-transcription-job --confidence on
  ts-to-word bda --inputFile result.json --guardrailCheck on --guardrailLimit 0.35
  ts-to-word bda --inputFile result.json --customFile blueprint.json

See 'ts-to-word <command> --help' for command-specific options.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Environment files carry service URLs and API keys.
		_ = godotenv.Load()
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		log.SetOutput(os.Stderr)
		cmd.Flags().Visit(func(f *pflag.Flag) {
			log.WithFields(log.Fields{"flag": f.Name, "value": f.Value.String()}).Debug("flag set")
		})
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ts-to-word.yaml)")
}

// onOff parses the {on|off} flag convention shared by several switches.
func onOff(name, value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("--%s must be on or off, got %q", name, value)
	}
}
