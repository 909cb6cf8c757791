// Command docgen-mcp is an MCP (Model Context Protocol) server that exposes
// business document generation to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/docgen/cmd/docgen-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "docgen": {
//	      "command": "docgen-mcp",
//	      "args": ["-watermark", "PREVIEW"]
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - generate_document: Render an offer, certificate, mou or invoice payload to PDF
//   - compute_invoice_totals: Subtotal, discount, tax and grand total of line items
//   - format_date: Format a date as "3rd January 2026"
//   - list_document_kinds: Supported kinds and their required fields
//
// # Available Resources
//
//   - docgen://kinds/{kind} : JSON Schema of a kind's form payload
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/lvillar/docgen"
	"github.com/lvillar/docgen/mcp"
)

func main() {
	watermark := flag.String("watermark", "PREVIEW", "text stamped on preview documents")
	letterhead := flag.String("letterhead", "", "PDF whose first page is drawn beneath every page")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	// Logs go to stderr; stdout carries the protocol.
	cfg := zap.NewProductionConfig()
	if *debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docgen-mcp: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gen := docgen.New(
		docgen.WithLogger(logger),
		docgen.WithPreviewWatermark(*watermark),
		docgen.WithLetterhead(*letterhead),
	)

	server, err := mcp.NewServer(gen, logger)
	if err != nil {
		logger.Fatal("building server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := mcp.Run(ctx, server); err != nil && ctx.Err() == nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
