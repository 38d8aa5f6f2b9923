package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/cvsspop/core/oracle"
	"github.com/huangsam/cvsspop/core/session"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reg     *oracle.Registry
	mgr     contract.StoreManager
}

// popupState is the get_popup_state payload.
type popupState struct {
	schema.StateReport
	Warnings []string `json:"warnings,omitempty"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreVector(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("vector", "")
	if text == "" {
		return mcp.NewToolResultError("vector is required"), nil
	}

	ev, err := session.Score(h.reg, text)
	if err != nil {
		notice, _ := session.NoticeFor(err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", notice.Text, err)), nil
	}
	if !ev.Valid {
		return mcp.NewToolResultError(fmt.Sprintf("vector could not be scored: %s", ev.Vector)), nil
	}
	return jsonResult(ev)
}

func (h *toolHandler) handleListMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stds := schema.AllStandards
	if s := request.GetString("standard", ""); s != "" {
		std, err := schema.ParseStandard(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		stds = []schema.Standard{std}
	}

	schemas := make([]*schema.MetricSchema, 0, len(stds))
	for _, std := range stds {
		ms, _ := schema.SchemaFor(std)
		schemas = append(schemas, ms)
	}
	return jsonResult(schemas)
}

func (h *toolHandler) handleGetPopupState(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var kv contract.StateStore
	if h.mgr != nil {
		kv = h.mgr.GetStateStore()
	}

	var logger contract.BufferedLogger
	sess, err := session.Open(ctx, h.reg, kv, session.WithFormat(h.baseCfg.StateFormat), session.WithLogger(&logger))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading popup state failed: %v", err)), nil
	}
	report := sess.Report()
	if err := sess.Close(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("closing popup state failed: %v", err)), nil
	}
	return jsonResult(popupState{StateReport: report, Warnings: logger.Lines()})
}

func (h *toolHandler) handleGetHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetHistoryStore() == nil {
		return mcp.NewToolResultError("history tracking is disabled"), nil
	}

	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = min(l, contract.MaxResultLimit)
	}

	entries, err := h.mgr.GetHistoryStore().List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing history failed: %v", err)), nil
	}
	if entries == nil {
		entries = []schema.HistoryEntry{}
	}
	return jsonResult(entries)
}
