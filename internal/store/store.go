package store

import (
	"time"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/elements"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/logging"
	"github.com/jusunglee/railmap-go/internal/metrics"
	"github.com/jusunglee/railmap-go/internal/models"
)

// Store holds the dataset loaded at startup together with its full route
// ranking. It is never modified after New returns, so readers need no locking.
type Store struct {
	coords       []models.StationCoordinate
	labels       []models.StationLabel
	labelByName  map[string]models.LabelStyle
	ranked       []models.RouteAggregate
	dangling     []models.RouteAggregate
	transactions int
	skipped      int
	loadedAt     time.Time
}

// New ranks every route once and drops the routes that reference a station
// missing from the coordinate lookup, logging each one.
func New(ds *loader.Dataset) *Store {
	log := logging.With("store")

	all := aggregate.Aggregate(ds.Transactions, aggregate.All)
	covered, dangling := elements.Coverage(ds.Coordinates, all)

	for _, r := range dangling {
		log.Warn().
			Str("origin", r.Origin).
			Str("destination", r.Destination).
			Int("tickets_sold", r.TicketsSold).
			Msg("Route references a station without coordinates, skipping")
	}
	if ds.Skipped > 0 {
		log.Warn().Int("rows", ds.Skipped).Msg("Skipped transactions with blank station or ID")
	}

	s := &Store{
		coords:       ds.Coordinates,
		labels:       ds.Labels,
		labelByName:  make(map[string]models.LabelStyle, len(ds.Labels)),
		ranked:       covered,
		dangling:     dangling,
		transactions: len(ds.Transactions),
		skipped:      ds.Skipped,
		loadedAt:     ds.LoadedAt,
	}
	for _, l := range ds.Labels {
		s.labelByName[l.Station] = l.Style
	}

	metrics.RecordLoad(s.transactions, s.skipped, len(dangling))
	log.Info().
		Int("transactions", s.transactions).
		Int("stations", len(s.coords)).
		Int("routes", len(s.ranked)).
		Msg("Dataset ready")

	return s
}

// Routes returns the top routes for limit. The slice must not be modified.
func (s *Store) Routes(limit aggregate.Limit) []models.RouteAggregate {
	return aggregate.Truncate(s.ranked, limit)
}

// Stations returns the coordinate lookup in file order
func (s *Store) Stations() []models.StationCoordinate {
	return s.coords
}

// Labels returns the label lookup in file order
func (s *Store) Labels() []models.StationLabel {
	return s.labels
}

// Label returns the label style of a station, if it has one
func (s *Store) Label(station string) (models.LabelStyle, bool) {
	style, ok := s.labelByName[station]
	return style, ok
}

// Dangling returns the routes dropped for referencing unknown stations
func (s *Store) Dangling() []models.RouteAggregate {
	return s.dangling
}

// TransactionCount returns the number of transactions loaded
func (s *Store) TransactionCount() int {
	return s.transactions
}

// SkippedCount returns the number of rows ignored while loading
func (s *Store) SkippedCount() int {
	return s.skipped
}

// RouteCount returns the number of drawable routes
func (s *Store) RouteCount() int {
	return len(s.ranked)
}

// LoadedAt returns when the dataset was read
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}
