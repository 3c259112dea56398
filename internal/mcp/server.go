// Package mcp provides an MCP (Model Context Protocol) server so AI agents
// can convert transcripts through tools instead of shelling out to the CLI.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/config"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/document"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/render"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// Server wraps the MCP server with the transcript conversion tools.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
}

// New creates the MCP server and registers its tools.
func New(cfg *config.Config) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"ts-to-word",
			"1.0.0",
			server.WithToolCapabilities(false),
		),
		cfg: cfg,
	}
	s.registerRenderTool()
	s.registerDetectTool()
	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerRenderTool() {
	tool := mcp.NewTool("render_transcript",
		mcp.WithDescription("Convert a speech-analytics result file into a markdown call report."),
		mcp.WithString("inputFile",
			mcp.Required(),
			mcp.Description("Path to the result JSON file (Transcribe, Call Analytics or BDA audio)"),
		),
		mcp.WithString("customFile",
			mcp.Description("Path to a custom blueprint inference result, for BDA input"),
		),
		mcp.WithBoolean("confidence",
			mcp.Description("Include the word confidence section"),
		),
		mcp.WithBoolean("guardrailCheck",
			mcp.Description("Include the guardrail breach section"),
		),
		mcp.WithNumber("guardrailLimit",
			mcp.Description("Inclusive confidence limit for guardrail breaches (default: 0.20)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleRender)
}

func (s *Server) registerDetectTool() {
	tool := mcp.NewTool("detect_variant",
		mcp.WithDescription("Report which result schema a file carries: standard, call-analytics or bda-audio."),
		mcp.WithString("inputFile",
			mcp.Required(),
			mcp.Description("Path to the result JSON file"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDetect)
}

func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	inputFile, ok := args["inputFile"].(string)
	if !ok || inputFile == "" {
		return mcp.NewToolResultError("inputFile parameter is required"), nil
	}
	customFile, _ := args["customFile"].(string)
	confidence, _ := args["confidence"].(bool)
	guardrailCheck, _ := args["guardrailCheck"].(bool)
	limit := s.cfg.Analysis.GuardrailLimit
	if l, ok := args["guardrailLimit"].(float64); ok {
		limit = l
	}

	out, err := s.renderFile(inputFile, customFile, render.Options{
		ShowConfidence: confidence,
		GuardrailCheck: guardrailCheck,
	}, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleDetect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	inputFile, ok := args["inputFile"].(string)
	if !ok || inputFile == "" {
		return mcp.NewToolResultError("inputFile parameter is required"), nil
	}

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	variant, err := schema.Detect(raw, schema.VariantUnknown)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(variant.String()), nil
}

// renderFile runs the file through the full pipeline, minus enrichment, and
// returns the markdown document.
func (s *Server) renderFile(inputFile, customFile string, opts render.Options, guardrailLimit float64) (string, error) {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	var custom []byte
	if customFile != "" {
		custom, err = os.ReadFile(customFile)
		if err != nil {
			return "", fmt.Errorf("reading custom blueprint file: %w", err)
		}
	}

	doc, err := schema.Parse(raw, schema.VariantUnknown, custom)
	if err != nil {
		return "", err
	}
	conv, err := model.Build(doc)
	if err != nil {
		return "", err
	}

	res := analysis.Compute(conv, analysis.Config{
		InterruptionMinOverlap: s.cfg.Analysis.InterruptionMinOverlap,
		GuardrailLimit:         guardrailLimit,
		ConfidenceBuckets:      s.cfg.Analysis.ConfidenceBuckets,
	})

	sections := render.Compose(conv, res, render.BuildCharts(conv, res), nil, opts)

	var buf bytes.Buffer
	if err := document.Assemble(document.NewMarkdown(&buf), sections); err != nil {
		return "", err
	}
	return buf.String(), nil
}
