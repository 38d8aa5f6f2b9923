package cmd

import (
	"github.com/huangsam/cvsspop/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the cvsspop MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents score vectors, list metrics,
and read the saved popup state and scoring history via standard tools.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, registry, storeManager)
	},
}
