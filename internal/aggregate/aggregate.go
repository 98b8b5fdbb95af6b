// Package aggregate ranks directed station pairs by the number of tickets sold.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jusunglee/railmap-go/internal/models"
)

// ErrInvalidLimit is returned by ParseLimit for anything other than "all" or a
// non-negative integer.
var ErrInvalidLimit = errors.New("invalid route limit")

const allKeyword = "all"

// Limit caps how many ranked routes are returned
type Limit struct {
	n   int
	all bool
}

// All returns every ranked route
var All = Limit{all: true}

// Top returns at most n routes. Negative values are treated as zero.
func Top(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n}
}

// ParseLimit parses "all" or a non-negative integer
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, allKeyword) {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Limit{}, fmt.Errorf("%w: %q", ErrInvalidLimit, s)
	}
	return Top(n), nil
}

// IsAll reports whether the limit keeps every route
func (l Limit) IsAll() bool {
	return l.all
}

// N returns the numeric cap; meaningless when IsAll is true
func (l Limit) N() int {
	return l.n
}

func (l Limit) String() string {
	if l.all {
		return allKeyword
	}
	return strconv.Itoa(l.n)
}

type pairKey struct {
	origin      string
	destination string
}

// Aggregate groups transactions by (departure, arrival), counts them and ranks
// the pairs by count, highest first. Pairs with equal counts keep the order in
// which they first occur in transactions.
func Aggregate(transactions []models.Transaction, limit Limit) []models.RouteAggregate {
	index := make(map[pairKey]int)
	routes := make([]models.RouteAggregate, 0)

	for _, tx := range transactions {
		key := pairKey{origin: tx.DepartureStation, destination: tx.ArrivalStation}
		if i, ok := index[key]; ok {
			routes[i].TicketsSold++
			continue
		}
		index[key] = len(routes)
		routes = append(routes, models.RouteAggregate{
			Origin:      key.origin,
			Destination: key.destination,
			TicketsSold: 1,
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].TicketsSold > routes[j].TicketsSold
	})

	return Truncate(routes, limit)
}

// Truncate returns the leading routes of an already ranked sequence. The
// result shares the backing array of ranked.
func Truncate(ranked []models.RouteAggregate, limit Limit) []models.RouteAggregate {
	if limit.all || limit.n >= len(ranked) {
		return ranked
	}
	return ranked[:limit.n]
}

// Total returns the number of tickets sold across routes
func Total(routes []models.RouteAggregate) int {
	total := 0
	for _, r := range routes {
		total += r.TicketsSold
	}
	return total
}
