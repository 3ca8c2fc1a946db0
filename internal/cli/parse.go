package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/kyle-williams-1/docsearch"
	"github.com/kyle-williams-1/docsearch/config"
	"github.com/kyle-williams-1/docsearch/factory"
	"github.com/kyle-williams-1/docsearch/query"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// NewParseCommand creates the parse command. The query is the arguments
// joined by spaces, or standard input when there are none.
func NewParseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [query...]",
		Short: "Parse a search query and print it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read query: %w", err)
				}
				raw = string(b)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			parser, err := docsearch.NewWithConfig(cfg)
			if err != nil {
				return err
			}

			q := parser.WithLogger(opts.logger).Parse(raw)
			level.Debug(opts.logger).Log("msg", "parsed query", "query", q.String())

			out, err := render(opts.outputFormat(cfg), cfg, q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// render prints the parsed query itself as JSON, or the index query built
// by the formatter named by format.
func render(format string, cfg *config.Config, q *query.Query) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(q, "", "  ")
	case "bson":
		v, err := formatQuery(cfg.WithFormatter(config.FormatterBSON), q)
		if err != nil {
			return nil, err
		}
		return bson.MarshalExtJSON(v, false, false)
	case "sphinx":
		v, err := formatQuery(cfg.WithFormatter(config.FormatterSphinx), q)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func formatQuery(cfg *config.Config, q *query.Query) (any, error) {
	formatFn, err := factory.CreateFormatter(cfg)
	if err != nil {
		return nil, err
	}
	return formatFn(q)
}
