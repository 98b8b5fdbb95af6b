package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jusunglee/railmap-go/internal/aggregate"
)

func newRoutesCmd(opts *globalOptions) *cobra.Command {
	var top string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print routes ranked by tickets sold",
		Example: `  railmap routes
  railmap routes --top all --transactions data/railway.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := aggregate.ParseLimit(top)
			if err != nil {
				return err
			}

			client, err := loadClient(cmd.Context(), opts)
			if err != nil {
				return err
			}

			routes, err := client.Routes(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, routesTable(routes))
			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("%d of %d routes, %d tickets",
				len(routes), client.Summary().Routes, aggregate.Total(routes))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&top, "top", "n", "10", `number of routes to show, or "all"`)
	return cmd
}
