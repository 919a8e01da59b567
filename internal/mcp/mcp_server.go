// Package mcp provides the Model Context Protocol (MCP) server implementation.
// Every tool call is one UI event on a single composed map.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
)

// NewMCPServer initializes and configures the tripmap MCP server for surface without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, surface *core.Surface) *server.MCPServer {
	s := server.NewMCPServer(
		"Tripmap Density Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		surface: surface,
	}

	// --- 1. Tool: get_overlay ---
	s.AddTool(mcp.NewTool("get_overlay",
		mcp.WithDescription("Return the composed trip density map: layers, styles, highlight state and notices."),
		mcp.WithString("format", mcp.Description("Result format. Defaults to 'json'."), mcp.Enum("json", "geojson")),
	), h.handleGetOverlay)

	// --- 2. Tool: select_feature ---
	s.AddTool(mcp.NewTool("select_feature",
		mcp.WithDescription("Click a zone: highlight it, bring it to front and open its density popup."),
		mcp.WithNumber("index", mcp.Description("Layer index of the zone.")),
		mcp.WithString("id", mcp.Description("Feature id of the zone, used when index is not given.")),
	), h.handleSelectFeature)

	// --- 3. Tool: reset_highlight ---
	s.AddTool(mcp.NewTool("reset_highlight",
		mcp.WithDescription("Restore every zone to its base style."),
	), h.handleResetHighlight)

	// --- 4. Tool: build_query ---
	s.AddTool(mcp.NewTool("build_query",
		mcp.WithDescription("Build the backend query string for a time window without fetching anything."),
		mcp.WithString("window", mcp.Description("Window kind (instant, range, hours). Defaults to 'instant'."), mcp.Enum("instant", "range", "hours")),
		mcp.WithString("date", mcp.Description("Instant of an instant window (e.g., '2023-01-12T15:30:45').")),
		mcp.WithString("start", mcp.Description("Start of a range window.")),
		mcp.WithString("end", mcp.Description("End of a range window.")),
		mcp.WithNumber("hour_span", mcp.Description("Hour span of instant and range windows. Defaults to 1.")),
		mcp.WithNumber("start_hour", mcp.Description("First hour of day of an hours window.")),
		mcp.WithNumber("end_hour", mcp.Description("Last hour of day of an hours window.")),
	), h.handleBuildQuery)

	return s
}

// StartMCPServer composes the map once and serves it over stdio.
func StartMCPServer(ctx context.Context, baseCfg *contract.Config, fetcher contract.TripFetcher) error {
	surface := core.Compose(core.WithSuppressHeader(ctx), baseCfg, fetcher)
	s := NewMCPServer(baseCfg, surface)
	return server.ServeStdio(s)
}
