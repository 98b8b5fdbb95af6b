// Package render exports an element set as a Graphviz drawing so the route
// map can be viewed without the interactive surface.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jusunglee/railmap-go/internal/elements"
	"github.com/jusunglee/railmap-go/internal/models"
)

// pointsPerInch converts rendering units to neato positions, which are in inches
const pointsPerInch = 72.0

// Options configures DOT output
type Options struct {
	// Labels maps station names to their short display label. Stations
	// without an entry are drawn as unlabelled points.
	Labels map[string]string

	// ShowTickets appends the tickets sold to every edge.
	ShowTickets bool
}

// ToDOT converts elements to Graphviz DOT. Node positions are pinned so that
// the neato engine reproduces the schematic layout.
func ToDOT(e models.Elements, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph railmap {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fixedsize=true, width=%.3f, fontsize=16, xlabel=\"\", label=\"\"];\n",
		elements.StationColor, elements.StationColor, float64(models.NodeSize)/pointsPerInch)
	fmt.Fprintf(&buf, "  edge [color=%q, arrowhead=normal, penwidth=%d];\n", elements.EdgeColor, models.EdgeWidth)
	buf.WriteString("\n")

	for _, n := range e.Nodes {
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.Position.X/pointsPerInch), fmtFloat(-n.Position.Y/pointsPerInch)),
			fmt.Sprintf("tooltip=%q", n.Data.Label),
		}
		if label, ok := opts.Labels[n.Data.ID]; ok {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", label))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Data.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, edge := range e.Edges {
		attrs := []string{fmt.Sprintf("tooltip=%q", edge.Data.Label)}
		if hasClass(edge.Classes, models.ClassTopRoute) {
			attrs = append(attrs, fmt.Sprintf("color=%q", elements.TopRouteColor))
		}
		if opts.ShowTickets && edge.Data.TicketsSold > 0 {
			attrs = append(attrs, fmt.Sprintf("label=\"%d\"", edge.Data.TicketsSold))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", edge.Data.Source, edge.Data.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with neato, keeping pinned positions, and
// returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// fmtFloat writes a position with at most two decimals
func fmtFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}
