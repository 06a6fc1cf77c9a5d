package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wooshiiltd/semrush-mcp/internal/observability"
	"github.com/wooshiiltd/semrush-mcp/internal/output"
	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

var (
	queryArgs   []string
	queryOutput string
)

var queryCmd = &cobra.Command{
	Use:   "query <tool>",
	Short: "Execute one tool against the SEMrush API",
	Long: `Execute one tool and print its result.

Arguments are passed as repeated --arg key=value flags, for example:

  semrush-mcp query semrush_keyword_overview_db --arg phrase="seo tools" --arg database=uk
  semrush-mcp query semrush_domain_organic_keywords --arg domain=example.com --arg limit=10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(queryOutput)
		if err != nil {
			return err
		}

		arguments, err := parseToolArgs(queryArgs)
		if err != nil {
			return err
		}

		registry, err := newRegistry(observability.CLILogger)
		if err != nil {
			return err
		}

		result, err := registry.Execute(cmd.Context(), args[0], arguments)
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatResult(result)
		if err != nil {
			return err
		}

		fmt.Println(rendered)
		return nil
	},
}

// parseToolArgs converts repeated key=value flags into an argument map.
// Values stay strings; the registry coerces them into the typed shapes
// each tool expects.
func parseToolArgs(pairs []string) (tools.Arguments, error) {
	arguments := make(tools.Arguments, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --arg %q: expected key=value", pair)
		}
		arguments[key] = value
	}
	return arguments, nil
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringArrayVar(&queryArgs, "arg", nil, "tool argument as key=value (repeatable)")
	queryCmd.Flags().StringVar(&queryOutput, "output-format", string(output.FormatTable), "Output format: table|json")
}
