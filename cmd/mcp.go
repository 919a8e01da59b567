package cmd

import (
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/mcp"
	"github.com/pynyc/tripmap/internal/tripclient"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tripmap MCP server",
	Long: `Compose the trip density map once and serve it over stdio.

Agents select and reset zones through tools; each call is one click on the map.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		ctx := core.WithSuppressHeader(rootCtx)
		return mcp.StartMCPServer(ctx, cfg, tripclient.NewClient(cfg))
	},
}
