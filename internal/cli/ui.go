package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jusunglee/railmap-go/internal/models"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorWhite = lipgloss.Color("255")

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleRank   = lipgloss.NewStyle().Foreground(colorDim).Align(lipgloss.Right)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// routesTable renders ranked routes with their rank and ticket count
func routesTable(routes []models.RouteAggregate) string {
	rows := make([][]string, len(routes))
	for i, r := range routes {
		rows[i] = []string{strconv.Itoa(i + 1), r.Origin, r.Destination, strconv.Itoa(r.TicketsSold)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Origin", "Destination", "Tickets Sold").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleRank
			case col == 3:
				return styleNumber
			default:
				return styleValue
			}
		})

	return t.Render()
}
