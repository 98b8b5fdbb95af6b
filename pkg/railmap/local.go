package railmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/elements"
	"github.com/jusunglee/railmap-go/internal/hover"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/metrics"
	"github.com/jusunglee/railmap-go/internal/models"
	"github.com/jusunglee/railmap-go/internal/store"
)

// LocalClient implements the Client interface over files loaded once at
// startup. It is safe for concurrent use.
type LocalClient struct {
	store      *store.Store
	cache      gcache.Cache
	stylesheet []models.StyleRule
}

// NewLocal loads the input files and builds the in-memory store.
// Any load failure is returned and names the failing file.
func NewLocal(ctx context.Context, config Config) (*LocalClient, error) {
	if config.TransactionsFile == "" || config.CoordinatesFile == "" {
		return nil, errors.New("transactions and coordinates files are required")
	}

	l := loader.New(config.Columns, config.FetchTimeout)
	ds, err := l.Load(ctx, loader.Sources{
		Transactions: config.TransactionsFile,
		Coordinates:  config.CoordinatesFile,
		Labels:       config.LabelsFile,
	})
	if err != nil {
		return nil, err
	}

	return NewFromDataset(ds, config.CacheSize), nil
}

// NewFromDataset builds a client over an already loaded dataset
func NewFromDataset(ds *loader.Dataset, cacheSize int) *LocalClient {
	if cacheSize < 1 {
		cacheSize = DefaultConfig().CacheSize
	}
	s := store.New(ds)
	return &LocalClient{
		store:      s,
		cache:      gcache.New(cacheSize).LRU().Build(),
		stylesheet: elements.Stylesheet(s.Labels()),
	}
}

func (c *LocalClient) Routes(limit aggregate.Limit) ([]models.RouteAggregate, error) {
	return c.store.Routes(limit), nil
}

// Elements returns the render elements for limit. Results are cached per
// limit; the returned value is shared and must not be modified.
func (c *LocalClient) Elements(limit aggregate.Limit) (models.Elements, error) {
	key := limit.String()

	if v, err := c.cache.GetIFPresent(key); err == nil {
		metrics.RecordElementRequest(key, true)
		return v.(models.Elements), nil
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return models.Elements{}, fmt.Errorf("element cache: %w", err)
	}

	e := elements.Build(c.store.Stations(), c.store.Labels(), c.store.Routes(limit))
	if err := c.cache.Set(key, e); err != nil {
		return models.Elements{}, fmt.Errorf("element cache: %w", err)
	}
	metrics.RecordElementRequest(key, false)
	return e, nil
}

func (c *LocalClient) Stations() ([]models.StationResponse, error) {
	coords := c.store.Stations()
	out := make([]models.StationResponse, len(coords))
	for i, sc := range coords {
		var style *models.LabelStyle
		if s, ok := c.store.Label(sc.Name); ok {
			style = &s
		}
		out[i] = sc.ConvertToResponse(style)
	}
	return out, nil
}

func (c *LocalClient) Stylesheet() []models.StyleRule {
	return c.stylesheet
}

func (c *LocalClient) NodeHover(node *models.NodeData) string {
	metrics.RecordHover("node")
	return hover.Node(node)
}

func (c *LocalClient) EdgeHover(edge *models.EdgeData) string {
	metrics.RecordHover("edge")
	return hover.Edge(edge)
}

func (c *LocalClient) Summary() Summary {
	all := c.store.Routes(aggregate.All)
	return Summary{
		Transactions: c.store.TransactionCount(),
		Skipped:      c.store.SkippedCount(),
		Stations:     len(c.store.Stations()),
		Labels:       len(c.store.Labels()),
		Routes:       len(all),
		Dangling:     len(c.store.Dangling()),
		TicketsSold:  aggregate.Total(all),
	}
}

func (c *LocalClient) LastLoad() time.Time {
	return c.store.LoadedAt()
}

var _ Client = (*LocalClient)(nil)
