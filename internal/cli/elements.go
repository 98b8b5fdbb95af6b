package cli

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jusunglee/railmap-go/internal/aggregate"
)

func newElementsCmd(opts *globalOptions) *cobra.Command {
	var (
		top    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Print the map nodes and edges as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := aggregate.ParseLimit(top)
			if err != nil {
				return err
			}

			client, err := loadClient(cmd.Context(), opts)
			if err != nil {
				return err
			}

			e, err := client.Elements(limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(e)
		},
	}

	cmd.Flags().StringVarP(&top, "top", "n", "10", `number of routes to include, or "all"`)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output")
	return cmd
}
