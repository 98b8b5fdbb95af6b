// Package loader reads the ticket transactions and the two station lookups
// once at startup. Sources are local paths or http(s) URLs.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/railmap-go/internal/models"
)

var (
	// ErrMissingColumn is returned when the transaction header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrMalformed is returned for content that cannot be parsed.
	ErrMalformed = errors.New("malformed input")
)

// Kinds of input, used in error messages
const (
	KindTransactions = "transactions"
	KindCoordinates  = "coordinates"
	KindLabels       = "labels"
)

// SourceError names the input that failed to load
type SourceError struct {
	Kind string
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s file %s: %v", e.Kind, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Columns names the transaction CSV columns the aggregation needs
type Columns struct {
	Departure string
	Arrival   string
	ID        string
}

// DefaultColumns returns the column names of the railway ticket export
func DefaultColumns() Columns {
	return Columns{
		Departure: "Departure Station",
		Arrival:   "Arrival Destination",
		ID:        "Transaction ID",
	}
}

// Sources locates the three inputs. Labels may be empty.
type Sources struct {
	Transactions string
	Coordinates  string
	Labels       string
}

// Dataset is everything read at startup
type Dataset struct {
	Transactions []models.Transaction
	Skipped      int
	Coordinates  []models.StationCoordinate
	Labels       []models.StationLabel
	LoadedAt     time.Time
}

// Loader reads inputs from disk or over HTTP
type Loader struct {
	columns    Columns
	httpClient *http.Client
}

// New creates a loader. timeout bounds each remote fetch.
func New(columns Columns, timeout time.Duration) *Loader {
	return &Loader{
		columns: columns,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load reads all three inputs concurrently. The first failure cancels the
// others and is returned as a *SourceError.
func (l *Loader) Load(ctx context.Context, src Sources) (*Dataset, error) {
	ds := &Dataset{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, skipped, err := l.Transactions(ctx, src.Transactions)
		if err != nil {
			return err
		}
		ds.Transactions, ds.Skipped = txs, skipped
		return nil
	})

	g.Go(func() error {
		coords, err := l.Coordinates(ctx, src.Coordinates)
		if err != nil {
			return err
		}
		ds.Coordinates = coords
		return nil
	})

	g.Go(func() error {
		if src.Labels == "" {
			return nil
		}
		labels, err := l.Labels(ctx, src.Labels)
		if err != nil {
			return err
		}
		ds.Labels = labels
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.LoadedAt = time.Now()
	return ds, nil
}

func (l *Loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("no path configured")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return l.fetch(ctx, path)
	}
	return os.Open(path)
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return resp.Body, nil
}
