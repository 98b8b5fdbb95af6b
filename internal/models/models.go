package models

import "fmt"

// Rendering constants shared by the element builder and the stylesheet
const (
	NodeSize  = 20
	EdgeWidth = 2
	Scale     = 150

	ClassStation  = "station"
	ClassTopRoute = "top-route"
)

// Label anchors
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
	AlignTop    = "top"
	AlignBottom = "bottom"
)

// Transaction represents a single ticket sale
type Transaction struct {
	ID               string `json:"id"`
	DepartureStation string `json:"departure_station"`
	ArrivalStation   string `json:"arrival_station"`
}

// RouteAggregate is the number of tickets sold on one directed station pair
type RouteAggregate struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TicketsSold int    `json:"tickets_sold"`
}

// Label returns the display label of the route
func (r RouteAggregate) Label() string {
	return fmt.Sprintf("%s --> %s", r.Origin, r.Destination)
}

// Position is a planar station position on the schematic map
type Position struct {
	Row float64 `json:"row"`
	Col float64 `json:"col"`
}

// StationCoordinate places a station on the map
type StationCoordinate struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// LabelStyle is the custom label text and anchors of a station
type LabelStyle struct {
	Label  string `json:"label" validate:"required"`
	HAlign string `json:"text-halign,omitempty" validate:"omitempty,oneof=left center right"`
	VAlign string `json:"text-valign,omitempty" validate:"omitempty,oneof=top center bottom"`
}

// WithDefaults fills unset anchors with center/top
func (s LabelStyle) WithDefaults() LabelStyle {
	if s.HAlign == "" {
		s.HAlign = AlignCenter
	}
	if s.VAlign == "" {
		s.VAlign = AlignTop
	}
	return s
}

// StationLabel attaches a label style to a station
type StationLabel struct {
	Station string     `json:"station"`
	Style   LabelStyle `json:"style"`
}

// NodeData is the data payload of a graph node
type NodeData struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Point is a position in rendering coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphNode is a render-ready station
type GraphNode struct {
	Data     NodeData `json:"data"`
	Position Point    `json:"position"`
	Classes  []string `json:"classes"`
}

// EdgeData is the data payload of a graph edge.
// TicketsSold is zero when no count is attached.
type EdgeData struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Label       string `json:"label"`
	TicketsSold int    `json:"ticketsSold,omitempty"`
	Width       int    `json:"width"`
}

// GraphEdge is a render-ready route
type GraphEdge struct {
	Data    EdgeData `json:"data"`
	Classes []string `json:"classes"`
}

// Elements is the node and edge list consumed by the graph surface
type Elements struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Stats summarizes an element set
type Stats struct {
	Stations    int `json:"stations"`
	Routes      int `json:"routes"`
	TicketsSold int `json:"tickets_sold"`
}

// Stats computes the summary of the element set
func (e Elements) Stats() Stats {
	stats := Stats{
		Stations: len(e.Nodes),
		Routes:   len(e.Edges),
	}
	for _, edge := range e.Edges {
		stats.TicketsSold += edge.Data.TicketsSold
	}
	return stats
}

// StyleRule is one selector of the renderer stylesheet
type StyleRule struct {
	Selector string         `json:"selector"`
	Style    map[string]any `json:"style"`
}

// StationResponse is the API response format for a station
type StationResponse struct {
	Name     string      `json:"name"`
	Position [2]float64  `json:"position"`
	Label    *LabelStyle `json:"label,omitempty"`
}

// ConvertToResponse converts a StationCoordinate to StationResponse format
func (c StationCoordinate) ConvertToResponse(style *LabelStyle) StationResponse {
	return StationResponse{
		Name:     c.Name,
		Position: [2]float64{c.Position.Row, c.Position.Col},
		Label:    style,
	}
}
