package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	mcpserver "github.com/custodia-labs/repocat-cli/internal/adapters/driving/mcp"
)

var flagMCPHTTP string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long:  `Exposes repository flattening as an MCP tool over stdio, or over HTTP with --http.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPHTTP, "http", "",
		"Serve MCP over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if documentBuilder == nil {
		return errors.New("document builder not configured")
	}

	server, err := mcpserver.NewServer(&mcpserver.Ports{Builder: documentBuilder})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if flagMCPHTTP != "" {
		cmd.Printf("Serving MCP over HTTP on %s\n", flagMCPHTTP)
		return server.RunHTTP(ctx, flagMCPHTTP)
	}
	return server.Run(ctx)
}
