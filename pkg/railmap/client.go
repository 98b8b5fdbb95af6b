// Package railmap is the public entry point for ranking railway routes and
// building the elements of the route map.
package railmap

import (
	"time"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/models"
)

// Client defines the interface for querying the route map
// Abstracts the data source so handlers and the CLI can be tested with mocks
type Client interface {
	Routes(limit aggregate.Limit) ([]models.RouteAggregate, error)
	Elements(limit aggregate.Limit) (models.Elements, error)
	Stations() ([]models.StationResponse, error)
	Stylesheet() []models.StyleRule

	NodeHover(node *models.NodeData) string
	EdgeHover(edge *models.EdgeData) string

	Summary() Summary
	LastLoad() time.Time
}

// Summary describes the loaded dataset
type Summary struct {
	Transactions int `json:"transactions"`
	Skipped      int `json:"skipped"`
	Stations     int `json:"stations"`
	Labels       int `json:"labels"`
	Routes       int `json:"routes"`
	Dangling     int `json:"dangling"`
	TicketsSold  int `json:"ticketsSold"`
}

// Config holds configuration for the client
// Transactions and coordinates are required; labels are optional
type Config struct {
	TransactionsFile string
	CoordinatesFile  string
	LabelsFile       string
	Columns          loader.Columns
	FetchTimeout     time.Duration
	CacheSize        int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		TransactionsFile: "data/railway.csv",
		CoordinatesFile:  "data/station_coords.json",
		LabelsFile:       "data/station_labels.json",
		Columns:          loader.DefaultColumns(),
		FetchTimeout:     30 * time.Second,
		CacheSize:        16,
	}
}

// FilterOption is one entry of the route filter control
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Filters describes the route filter control
type Filters struct {
	Options   []FilterOption `json:"options"`
	Default   string         `json:"default"`
	Clearable bool           `json:"clearable"`
}

// DefaultLimit is the filter applied when none is chosen
var DefaultLimit = aggregate.Top(10)

// FilterOptions returns the route filter control: top 10, top 30 or all
// routes, defaulting to the top 10. A value is always selected.
func FilterOptions() Filters {
	return Filters{
		Options: []FilterOption{
			{Label: "Top 10", Value: aggregate.Top(10).String()},
			{Label: "Top 30", Value: aggregate.Top(30).String()},
			{Label: "All", Value: aggregate.All.String()},
		},
		Default:   DefaultLimit.String(),
		Clearable: false,
	}
}
