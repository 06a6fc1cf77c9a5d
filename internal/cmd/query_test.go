package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

func TestParseToolArgs(t *testing.T) {
	arguments, err := parseToolArgs([]string{
		"domain=example.com",
		"database=uk",
		"limit=10",
	})
	require.NoError(t, err)

	assert.Equal(t, tools.Arguments{
		"domain":   "example.com",
		"database": "uk",
		"limit":    "10",
	}, arguments)
}

func TestParseToolArgsKeepsEqualsInValue(t *testing.T) {
	arguments, err := parseToolArgs([]string{"phrase=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", arguments["phrase"])
}

func TestParseToolArgsRejectsMalformedPairs(t *testing.T) {
	_, err := parseToolArgs([]string{"no-separator"})
	require.Error(t, err)

	_, err = parseToolArgs([]string{"=value"})
	require.Error(t, err)
}
