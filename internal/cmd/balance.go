package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wooshiiltd/semrush-mcp/internal/observability"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the remaining API unit balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(observability.CLILogger)
		if err != nil {
			return err
		}

		envelope, err := client.APIUnitsBalance(cmd.Context())
		if err != nil {
			return err
		}

		switch data := envelope.Data.(type) {
		case string:
			fmt.Println(strings.TrimSpace(data))
		default:
			fmt.Println(data)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
