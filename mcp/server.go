// Package mcp implements a Model Context Protocol (MCP) server that exposes
// document generation as tools and the form payload schemas as resources.
//
// The protocol is handled by the official Go SDK; this package only defines the
// tools and resources. Tool inputs are typed structs whose JSON Schema the SDK
// infers and validates before a handler runs.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "docgen": {
//	      "command": "docgen-mcp"
//	    }
//	  }
//	}
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/lvillar/docgen"
)

const (
	serverName    = "docgen-mcp"
	serverVersion = "1.0.0"
)

// NewServer returns an MCP server with the document tools backed by gen and a
// schema resource per document kind. Tool failures are logged to log.
func NewServer(gen *docgen.Generator, log *zap.Logger) (*sdk.Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(s, gen, log)
	if err := registerResources(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves s over stdin and stdout until the client disconnects or ctx is done.
func Run(ctx context.Context, s *sdk.Server) error {
	return s.Run(ctx, &sdk.StdioTransport{})
}

// toolFunc handles a decoded tool input.
type toolFunc[In any] func(ctx context.Context, in In) (*sdk.CallToolResult, error)

// addTool registers h under t. A handler error is returned to the client as an
// error result and logged.
func addTool[In any](s *sdk.Server, log *zap.Logger, t *sdk.Tool, h toolFunc[In]) {
	sdk.AddTool(s, t, func(ctx context.Context, _ *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		res, err := h(ctx, in)
		if err != nil {
			log.Info("tool failed", zap.String("tool", t.Name), zap.Error(err))
			return nil, nil, err
		}
		return res, nil, nil
	})
}
