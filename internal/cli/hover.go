package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jusunglee/railmap-go/internal/hover"
	"github.com/jusunglee/railmap-go/internal/models"
)

func newHoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hover",
		Short: "Format the tooltip for a node or edge payload",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "node <json>",
		Short:   "Format a station tooltip",
		Example: `  railmap hover node '{"id":"York","label":"York"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var node *models.NodeData
			if err := json.Unmarshal([]byte(args[0]), &node); err != nil {
				return fmt.Errorf("invalid node payload: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hover.Node(node))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "edge <json>",
		Short:   "Format a route tooltip",
		Example: `  railmap hover edge '{"label":"York --> Durham","ticketsSold":12}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edge *models.EdgeData
			if err := json.Unmarshal([]byte(args[0]), &edge); err != nil {
				return fmt.Errorf("invalid edge payload: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hover.Edge(edge))
			return nil
		},
	})

	return cmd
}
