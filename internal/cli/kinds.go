package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewKindsCommand creates the kinds command, which lists the canonical kinds
// in resolution order.
func NewKindsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List canonical field kinds in resolution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			kinds, err := cfg.Registry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tTYPE\tALIASES")
			for _, k := range kinds.Kinds() {
				typ := "field"
				if k.Attribute {
					typ = "attribute"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", k.Name, typ, strings.Join(k.Aliases, ","))
			}
			return w.Flush()
		},
	}
}
