package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/internal/outwriter"
	"github.com/pynyc/tripmap/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
// mu serializes tool calls so the surface sees one event at a time.
type toolHandler struct {
	mu      sync.Mutex
	baseCfg *contract.Config
	surface *core.Surface
}

func (h *toolHandler) handleGetOverlay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	res := h.surface.Result()
	if request.GetString("format", "json") == "geojson" {
		data, err := outwriter.SurfaceFeatureCollection(res).MarshalJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding overlay failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return h.surfaceResult()
}

func (h *toolHandler) handleSelectFeature(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.surface.Overlay == nil {
		return mcp.NewToolResultError(fmt.Sprintf("select failed: %v", core.ErrNoOverlay)), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 {
		id := request.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("select failed: index or id is required"), nil
		}
		i, ok := h.surface.Overlay.IndexOf(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("select failed: zone %q: %v", id, core.ErrNoSuchFeature)), nil
		}
		index = i
	}

	if err := h.surface.Select(index); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("select failed: %v", err)), nil
	}
	return h.surfaceResult()
}

func (h *toolHandler) handleResetHighlight(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.surface.Reset(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return h.surfaceResult()
}

func (h *toolHandler) handleBuildQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Start from the session's window settings; arguments override them.
	cfg := h.baseCfg.Clone()
	input := cfg.WindowInput()
	input.Window = request.GetString("window", input.Window)
	input.Date = request.GetString("date", "")
	if input.Date != "" && request.GetString("window", "") == "" {
		input.Window = string(schema.InstantWindow)
	}
	input.Start = request.GetString("start", "")
	input.End = request.GetString("end", "")
	input.HourSpan = request.GetInt("hour_span", input.HourSpan)
	input.StartHour = request.GetInt("start_hour", input.StartHour)
	endHour := request.GetInt("end_hour", *input.EndHour)
	input.EndHour = &endHour

	if err := contract.ProcessWindowOverrides(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	w := core.ResolveWindow(ctx, cfg)
	jsonData, _ := json.MarshalIndent(outwriter.NewQueryResult(core.BuildQuery(w), w), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// surfaceResult encodes the current surface state. Callers hold mu.
func (h *toolHandler) surfaceResult() (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(h.surface.Result(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
