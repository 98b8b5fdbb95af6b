// Package elements turns station lookups and ranked routes into the node and
// edge descriptors drawn by the map surface.
package elements

import (
	"strings"

	"github.com/jusunglee/railmap-go/internal/models"
)

// Build maps every known station to a node and every ranked route to an edge.
// Nodes follow coords order and edges follow routes order. Callers are
// expected to pass only routes whose endpoints exist in coords; see Coverage.
func Build(coords []models.StationCoordinate, labels []models.StationLabel, routes []models.RouteAggregate) models.Elements {
	labelled := make(map[string]bool, len(labels))
	for _, l := range labels {
		labelled[l.Station] = true
	}

	elements := models.Elements{
		Nodes: make([]models.GraphNode, 0, len(coords)),
		Edges: make([]models.GraphEdge, 0, len(routes)),
	}

	for _, c := range coords {
		elements.Nodes = append(elements.Nodes, buildNode(c, labelled[c.Name]))
	}

	for _, r := range routes {
		elements.Edges = append(elements.Edges, buildEdge(r))
	}

	return elements
}

func buildNode(c models.StationCoordinate, labelled bool) models.GraphNode {
	classes := []string{models.ClassStation}
	if labelled {
		classes = append(classes, StationClass(c.Name))
	}

	return models.GraphNode{
		Data: models.NodeData{
			ID:     c.Name,
			Label:  c.Name,
			Width:  models.NodeSize,
			Height: models.NodeSize,
		},
		Position: Project(c.Position),
		Classes:  classes,
	}
}

func buildEdge(r models.RouteAggregate) models.GraphEdge {
	return models.GraphEdge{
		Data: models.EdgeData{
			Source:      r.Origin,
			Target:      r.Destination,
			Label:       r.Label(),
			TicketsSold: r.TicketsSold,
			Width:       models.EdgeWidth,
		},
		Classes: []string{models.ClassTopRoute},
	}
}

// Project converts a map position to rendering coordinates. The row axis
// grows downwards on screen, so it is inverted.
func Project(p models.Position) models.Point {
	return models.Point{
		X: p.Col * models.Scale,
		Y: -p.Row * models.Scale,
	}
}

// StationClass is the style class carrying the custom label placement of a
// station: the name lower-cased with spaces replaced by underscores.
func StationClass(station string) string {
	return strings.ReplaceAll(strings.ToLower(station), " ", "_")
}

// Coverage splits routes into those whose endpoints are both known stations
// and those referencing a station missing from coords. Order is preserved in
// both results.
func Coverage(coords []models.StationCoordinate, routes []models.RouteAggregate) (covered, dangling []models.RouteAggregate) {
	known := make(map[string]bool, len(coords))
	for _, c := range coords {
		known[c.Name] = true
	}

	covered = make([]models.RouteAggregate, 0, len(routes))
	for _, r := range routes {
		if known[r.Origin] && known[r.Destination] {
			covered = append(covered, r)
		} else {
			dangling = append(dangling, r)
		}
	}
	return covered, dangling
}
