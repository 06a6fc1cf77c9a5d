// Package config provides centralized configuration for semrush-mcp.
// Values are layered: built-in defaults, an optional YAML config file,
// then SEMRUSH_-prefixed environment variables and bound flags.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	APIKey    string          `mapstructure:"api_key" yaml:"api_key"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// CacheConfig contains response cache configuration.
type CacheConfig struct {
	// TTLSeconds is the cache entry lifetime in seconds.
	TTLSeconds int `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

// TTL returns the cache lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RateLimitConfig bounds upstream request throughput.
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" yaml:"port"`
}

// Redacted returns a copy safe for display: the credential is masked,
// never printed.
func (c Config) Redacted() Config {
	out := c
	if out.APIKey != "" {
		out.APIKey = "********"
	}
	return out
}
