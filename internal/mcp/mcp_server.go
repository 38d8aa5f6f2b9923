// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cvsspop/core/oracle"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the cvsspop MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reg *oracle.Registry, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"CVSS Vector Builder Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reg:     reg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_vector ---
	s.AddTool(mcp.NewTool("score_vector",
		mcp.WithDescription("Score a CVSS 3.1 or 4.0 base vector. Metrics the vector omits take their default value."),
		mcp.WithString("vector", mcp.Description("Vector string starting with CVSS:3.1/ or CVSS:4.0/."), mcp.Required()),
	), h.handleScoreVector)

	// --- 2. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the base metrics, legal values and defaults of a CVSS standard."),
		mcp.WithString("standard", mcp.Description("Standard to list (cvss3 or cvss4). Defaults to both."), mcp.Enum("cvss3", "cvss4")),
	), h.handleListMetrics)

	// --- 3. Tool: get_popup_state ---
	s.AddTool(mcp.NewTool("get_popup_state",
		mcp.WithDescription("Read the persisted vector builder state with the evaluation of each standard."),
	), h.handleGetPopupState)

	// --- 4. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("List recently scored vectors, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of entries returned.")),
	), h.handleGetHistory)

	return s
}

// StartMCPServer starts the cvsspop MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reg *oracle.Registry, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, reg, mgr)
	return server.ServeStdio(s)
}
