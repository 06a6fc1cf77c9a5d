// Package cmd wires the semrush-mcp CLI: a tool server plus one-shot
// commands for querying individual SEMrush reports.
package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wooshiiltd/semrush-mcp/internal/config"
	"github.com/wooshiiltd/semrush-mcp/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "semrush-mcp",
	Short: "SEMrush SEO data tool server",
	Long: `semrush-mcp exposes SEMrush analytics reports as callable tools.

Run "serve" to start the HTTP tool server, or use the one-shot commands
(query, tools, balance) against the SEMrush API directly.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Disable global telemetry early to prevent config loading from emitting
	// metrics to stdout. Server mode will initialize proper telemetry later.
	disabledConfig := &telemetry.Config{Enabled: false}
	if sys, err := telemetry.NewSystem(disabledConfig); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/semrush-mcp/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads configuration from the optional file and environment.
func initConfig() {
	// Initialize CLI logger early so we can use it in config loading
	observability.InitCLILogger("semrush-mcp", verbose)

	if _, err := config.Load(viper.GetViper(), cfgFile); err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to load configuration", err)
	}

	if verbose && viper.ConfigFileUsed() != "" {
		observability.CLILogger.Debug("Using config file",
			zap.String("path", viper.ConfigFileUsed()))
	}
}
