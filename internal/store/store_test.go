package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/models"
)

func tx(id, from, to string) models.Transaction {
	return models.Transaction{ID: id, DepartureStation: from, ArrivalStation: to}
}

func testDataset() *loader.Dataset {
	return &loader.Dataset{
		Transactions: []models.Transaction{
			tx("1", "York", "Durham"),
			tx("2", "York", "Durham"),
			tx("3", "Durham", "York"),
			tx("4", "York", "Atlantis"),
			tx("5", "York", "Atlantis"),
			tx("6", "York", "Atlantis"),
			tx("7", "Edinburgh Waverley", "York"),
		},
		Skipped: 1,
		Coordinates: []models.StationCoordinate{
			{Name: "Edinburgh Waverley", Position: models.Position{Row: 9, Col: 2}},
			{Name: "Durham", Position: models.Position{Row: 8, Col: 2.5}},
			{Name: "York", Position: models.Position{Row: 7.4, Col: 2.4}},
		},
		Labels: []models.StationLabel{
			{Station: "York", Style: models.LabelStyle{Label: "York", HAlign: "center", VAlign: "top"}},
		},
		LoadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore(t *testing.T) {
	s := New(testDataset())

	t.Run("Routes", func(t *testing.T) {
		all := s.Routes(aggregate.All)

		require.Len(t, all, 3)
		assert.Equal(t, models.RouteAggregate{Origin: "York", Destination: "Durham", TicketsSold: 2}, all[0])
		assert.Equal(t, "Durham", all[1].Origin)
		assert.Equal(t, "Edinburgh Waverley", all[2].Origin)

		assert.Equal(t, all[:1], s.Routes(aggregate.Top(1)))
		assert.Equal(t, all, s.Routes(aggregate.Top(10)))
	})

	t.Run("Dangling", func(t *testing.T) {
		assert.Equal(t, []models.RouteAggregate{
			{Origin: "York", Destination: "Atlantis", TicketsSold: 3},
		}, s.Dangling())
	})

	t.Run("Counts", func(t *testing.T) {
		assert.Equal(t, 7, s.TransactionCount())
		assert.Equal(t, 1, s.SkippedCount())
		assert.Equal(t, 3, s.RouteCount())
	})

	t.Run("Lookups", func(t *testing.T) {
		assert.Len(t, s.Stations(), 3)
		assert.Equal(t, "Edinburgh Waverley", s.Stations()[0].Name)
		assert.Len(t, s.Labels(), 1)

		style, ok := s.Label("York")
		assert.True(t, ok)
		assert.Equal(t, "York", style.Label)

		_, ok = s.Label("Durham")
		assert.False(t, ok)
	})

	t.Run("LoadedAt", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s.LoadedAt())
	})
}

func TestStoreEmptyDataset(t *testing.T) {
	s := New(&loader.Dataset{})

	assert.Empty(t, s.Routes(aggregate.All))
	assert.Empty(t, s.Dangling())
	assert.Zero(t, s.TransactionCount())
}
