// Package hover formats the tooltip text shown for the node or edge under the
// pointer.
package hover

import (
	"fmt"

	"github.com/jusunglee/railmap-go/internal/models"
)

// Node returns the tooltip for a station, or "" when nothing is hovered
func Node(data *models.NodeData) string {
	if data == nil {
		return ""
	}
	return fmt.Sprintf("Station: %s", data.Label)
}

// Edge returns the tooltip for a route, or "" when nothing is hovered. The
// ticket count is only shown when one is attached.
func Edge(data *models.EdgeData) string {
	if data == nil {
		return ""
	}
	if data.TicketsSold > 0 {
		return fmt.Sprintf("Route: %s, Tickets Sold: %d", data.Label, data.TicketsSold)
	}
	return fmt.Sprintf("Route: %s", data.Label)
}
