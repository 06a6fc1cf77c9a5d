package cmd

import (
	"github.com/fulmenhq/gofulmen/logging"
	"github.com/spf13/viper"

	"github.com/wooshiiltd/semrush-mcp/internal/config"
	"github.com/wooshiiltd/semrush-mcp/internal/semrush"
	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

// newClient builds a request client from the loaded configuration. The
// credential check happens here, before any network activity.
func newClient(logger *logging.Logger) (*semrush.Client, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		loaded, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	return semrush.NewClient(semrush.Config{
		APIKey:            cfg.APIKey,
		CacheTTL:          cfg.Cache.TTL(),
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Logger:            logger,
	})
}

// newRegistry builds the tool registry backed by a configured client.
func newRegistry(logger *logging.Logger) (*tools.Registry, error) {
	client, err := newClient(logger)
	if err != nil {
		return nil, err
	}
	return tools.NewRegistry(client), nil
}
