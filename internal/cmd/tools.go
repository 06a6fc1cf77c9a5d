package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wooshiiltd/semrush-mcp/internal/config"
	"github.com/wooshiiltd/semrush-mcp/internal/semrush"
	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := ""
		if cfg := config.GetConfig(); cfg != nil {
			apiKey = cfg.APIKey
		}
		if strings.TrimSpace(apiKey) == "" {
			// Catalog only; no request leaves the process without a real
			// credential.
			apiKey = "unconfigured"
		}

		client, err := semrush.NewClient(semrush.Config{APIKey: apiKey})
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Tool", "Description"})
		for _, tool := range tools.NewRegistry(client).List() {
			t.AppendRow(table.Row{tool.Name, tool.Description})
		}

		fmt.Println(t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
