package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wooshiiltd/semrush-mcp/internal/config"
	errwrap "github.com/wooshiiltd/semrush-mcp/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the effective configuration after defaults, config file, and environment are merged. The API key is redacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		if cfg == nil {
			return errwrap.NewConfigInvalidError("configuration not loaded")
		}

		rendered, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return err
		}

		fmt.Print(string(rendered))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
