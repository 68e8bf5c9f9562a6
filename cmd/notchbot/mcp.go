package main

import (
	"github.com/spf13/cobra"

	"notch-chatbot/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tools over MCP on stdio",
	Long: `Starts a Model Context Protocol server on stdio exposing the same tools
the chat agent uses. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return mcpserver.NewServer(a.cfg.App.Name, a.cfg.App.Version, a.registry, a.log).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
