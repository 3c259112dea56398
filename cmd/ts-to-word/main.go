// Package main is the entry point for the ts-to-word CLI tool.
package main

import (
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/cmd"
)

func main() {
	cmd.Execute()
}
