package aggregate

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/railmap-go/internal/models"
)

func repeat(origin, destination string, n int) []models.Transaction {
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{
			ID:               fmt.Sprintf("%s-%s-%d", origin, destination, i),
			DepartureStation: origin,
			ArrivalStation:   destination,
		}
	}
	return txs
}

func sample() []models.Transaction {
	var txs []models.Transaction
	txs = append(txs, repeat("A", "B", 5)...)
	txs = append(txs, repeat("B", "A", 3)...)
	txs = append(txs, repeat("A", "C", 1)...)
	return txs
}

func randomTransactions(r *rand.Rand, n int) []models.Transaction {
	stations := []string{"York", "Durham", "Reading", "Oxford", "Cardiff Central"}
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{
			ID:               fmt.Sprintf("tx-%d", i),
			DepartureStation: stations[r.Intn(len(stations))],
			ArrivalStation:   stations[r.Intn(len(stations))],
		}
	}
	return txs
}

func TestAggregate(t *testing.T) {
	t.Run("ranks directed pairs", func(t *testing.T) {
		routes := Aggregate(sample(), All)

		assert.Equal(t, []models.RouteAggregate{
			{Origin: "A", Destination: "B", TicketsSold: 5},
			{Origin: "B", Destination: "A", TicketsSold: 3},
			{Origin: "A", Destination: "C", TicketsSold: 1},
		}, routes)
	})

	t.Run("top one", func(t *testing.T) {
		routes := Aggregate(sample(), Top(1))

		assert.Equal(t, []models.RouteAggregate{
			{Origin: "A", Destination: "B", TicketsSold: 5},
		}, routes)
	})

	t.Run("limit above route count returns everything", func(t *testing.T) {
		assert.Len(t, Aggregate(sample(), Top(30)), 3)
	})

	t.Run("zero limit returns nothing", func(t *testing.T) {
		routes := Aggregate(sample(), Top(0))

		assert.NotNil(t, routes)
		assert.Empty(t, routes)
	})

	t.Run("empty input yields empty sequence", func(t *testing.T) {
		routes := Aggregate(nil, All)

		assert.NotNil(t, routes)
		assert.Empty(t, routes)
	})

	t.Run("ties keep first occurrence order", func(t *testing.T) {
		var txs []models.Transaction
		txs = append(txs, repeat("Z", "Y", 1)...)
		txs = append(txs, repeat("M", "N", 2)...)
		txs = append(txs, repeat("A", "B", 1)...)
		txs = append(txs, repeat("Z", "Y", 1)...)

		routes := Aggregate(txs, All)

		require.Len(t, routes, 3)
		assert.Equal(t, "Z", routes[0].Origin)
		assert.Equal(t, "M", routes[1].Origin)
		assert.Equal(t, "A", routes[2].Origin)
	})

	t.Run("does not modify input", func(t *testing.T) {
		txs := sample()
		before := append([]models.Transaction(nil), txs...)

		Aggregate(txs, Top(2))

		assert.Equal(t, before, txs)
	})
}

func TestAggregateProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 25; i++ {
		txs := randomTransactions(r, r.Intn(200))
		all := Aggregate(txs, All)

		assert.Equal(t, len(txs), Total(all), "ticket total must equal transaction count")

		for j := 1; j < len(all); j++ {
			assert.GreaterOrEqual(t, all[j-1].TicketsSold, all[j].TicketsSold)
		}

		for _, n := range []int{0, 1, 3, 10, 30, 1000} {
			top := Aggregate(txs, Top(n))
			want := min(n, len(all))
			require.Len(t, top, want)
			assert.Equal(t, all[:want], top)
		}
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		input   string
		want    Limit
		wantErr bool
	}{
		{"10", Top(10), false},
		{"30", Top(30), false},
		{"0", Top(0), false},
		{"all", All, false},
		{"ALL", All, false},
		{" 10 ", Top(10), false},
		{"-1", Limit{}, true},
		{"ten", Limit{}, true},
		{"", Limit{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLimit(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidLimit))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitString(t *testing.T) {
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "10", Top(10).String())
	assert.Equal(t, "0", Top(-5).String())
	assert.True(t, All.IsAll())
	assert.False(t, Top(3).IsAll())
	assert.Equal(t, 3, Top(3).N())
}

func TestTruncate(t *testing.T) {
	ranked := Aggregate(sample(), All)

	assert.Equal(t, ranked, Truncate(ranked, All))
	assert.Equal(t, ranked[:2], Truncate(ranked, Top(2)))
	assert.Equal(t, ranked, Truncate(ranked, Top(99)))
}
