package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/PDFSummarizer/internal/bootstrap"
	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/mcpserver"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "1.0.0"

func main() {
	settings, err := config.Load()
	//stdout carries the protocol
	logger_i.Init(logger_i.Options{IsProd: true, Level: settings.SlogLevel(), Writer: os.Stderr})
	logger := logger_i.NewLogger("mcp main")
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summarizer, err := bootstrap.NewSummarizer(ctx, settings)
	if err != nil {
		logger.Error("Could not create the summarizer", "error", err)
		os.Exit(1)
	}

	logger.Info("Serving mcp over stdio", "provider", settings.LLMProvider, "model", settings.LLMModel)
	if err := mcpserver.NewServer(summarizer, version).Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
