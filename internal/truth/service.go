package truth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ecomsimply/price-truth/internal/consensus"
	"github.com/ecomsimply/price-truth/internal/platform"
	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//go:generate mockery --name SourceAdapter --filename sourceadapter.go
//go:generate mockery --name Store --filename store.go

// ReportingCurrency is the normalized currency of stored price truth records.
const ReportingCurrency = "EUR"

// SourceAdapter extracts one source's price for a search query.
type SourceAdapter interface {
	// Name returns the source identifier, e.g. "amazon".
	Name() string
	// ExtractPrice attempts to extract the price for query from the source.
	// Ordinary "not found" conditions are success=false results, not errors.
	ExtractPrice(ctx context.Context, query string) (*models.PriceExtraction, error)
}

// Store is persistence for price truth records.
type Store interface {
	// GetPriceTruth returns the record for sku, or nil when there is none.
	GetPriceTruth(ctx context.Context, sku string) (*models.PriceTruth, error)
	// SearchByQuery returns the record stored under the free-text query, or nil.
	SearchByQuery(ctx context.Context, query string) (*models.PriceTruth, error)
	// UpsertPriceTruth replaces the record stored under the record's key.
	UpsertPriceTruth(ctx context.Context, truth *models.PriceTruth) error
	// GetStaleRecords returns records whose ttlHours window has elapsed.
	GetStaleRecords(ctx context.Context, ttlHours int) ([]models.PriceTruth, error)
	// EnsureIndexes creates store indexes. One-time setup hook.
	EnsureIndexes(ctx context.Context) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Config holds service behaviour switches.
type Config struct {
	// Enabled turns the whole service off when false: lookups return nil
	// without touching adapters or the store.
	Enabled bool
	// TTLHours is the freshness window of cached records.
	TTLHours int
	// FetchTimeout bounds each single adapter call.
	FetchTimeout time.Duration
	// MaxParallelFetches caps in-flight adapter calls per lookup round.
	MaxParallelFetches int
}

// Option is custom configuration of Service.
type Option func(s *Service)

// Service orchestrates multi-source price lookups with cached consensus records.
type Service struct {
	cfg      Config
	store    Store
	adapters []SourceAdapter
	calc     consensus.Calculator
	clock    Clock
	logger   *zerolog.Logger
	flight   singleflight.Group

	// best-effort telemetry counters, atomically updated
	totalQueries        int64
	cacheHits           int64
	successfulConsensus int64
	failedConsensus     int64
	sourcesQueried      int64
}

// NewService returns new Service using provided store and source adapters.
func NewService(
	cfg Config,
	store Store,
	adapters []SourceAdapter,
	calc consensus.Calculator,
	ops ...Option,
) *Service {
	svc := &Service{
		cfg:      cfg,
		store:    store,
		adapters: adapters,
		calc:     calc,
		clock:    systemClock{},
		logger:   lo.ToPtr(zerolog.Nop()),
	}

	for _, op := range ops {
		op(svc)
	}

	return svc
}

// GetPriceTruth returns the price truth for sku or query, recomputing it from
// the source adapters when there is no fresh cached record or forceRefresh is
// set. It returns nil without any side effects when the service is disabled.
func (s *Service) GetPriceTruth(
	ctx context.Context,
	sku string,
	query string,
	forceRefresh bool,
) (*models.PriceTruthResponse, error) {
	if !s.cfg.Enabled {
		return nil, nil
	}

	if sku == "" && query == "" {
		return nil, platform.ErrMissingLookupKey
	}

	atomic.AddInt64(&s.totalQueries, 1)

	if !forceRefresh {
		cached, err := s.cachedRecord(ctx, sku, query)
		if err != nil {
			return nil, err
		}

		if cached != nil && cached.IsFresh(s.clock.Now()) {
			atomic.AddInt64(&s.cacheHits, 1)
			s.logger.Debug().
				Str("key", cached.Key()).
				Msg("price truth served from cache")
			return cached.Response(s.clock.Now()), nil
		}
	}

	// concurrent misses for the same key share one fetch round
	key := lookupKey(sku, query)
	result, err, _ := s.flight.Do(key, func() (interface{}, error) {
		record := s.fetchAndCalculate(ctx, sku, query)

		if err := s.store.UpsertPriceTruth(ctx, record); err != nil {
			return nil, platform.NewStoreError("upsert_price_truth", err)
		}

		return record, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.PriceTruth).Response(s.clock.Now()), nil
}

// RefreshStalePrices recomputes every stale record sequentially and returns a
// batch summary. A single record's failure is logged and counted, it never
// aborts the batch.
func (s *Service) RefreshStalePrices(ctx context.Context) (*models.RefreshSummary, error) {
	if !s.cfg.Enabled {
		return &models.RefreshSummary{
			Message:   "price truth service is disabled",
			Timestamp: s.clock.Now(),
		}, nil
	}

	stale, err := s.store.GetStaleRecords(ctx, s.cfg.TTLHours)
	if err != nil {
		return nil, platform.NewStoreError("get_stale_records", err)
	}

	summary := models.RefreshSummary{Found: len(stale)}

	// sequential on purpose, bulk refresh must not burst outbound requests
	for ix := range stale {
		if _, err := s.GetPriceTruth(ctx, stale[ix].SKU, stale[ix].Query, true); err != nil {
			summary.Errors++
			s.logger.Error().
				Err(err).
				Str("key", stale[ix].Key()).
				Msg("can't refresh stale price")
			continue
		}
		summary.Refreshed++
	}

	summary.Timestamp = s.clock.Now()

	return &summary, nil
}

// Stats returns a snapshot of the in-memory service counters and configuration.
func (s *Service) Stats() models.ServiceStats {
	stats := models.ServiceStats{
		Enabled:             s.cfg.Enabled,
		TTLHours:            s.cfg.TTLHours,
		TolerancePct:        s.calc.TolerancePct(),
		MinSourcesRequired:  s.calc.MinSources(),
		TotalQueries:        atomic.LoadInt64(&s.totalQueries),
		CacheHits:           atomic.LoadInt64(&s.cacheHits),
		SuccessfulConsensus: atomic.LoadInt64(&s.successfulConsensus),
		FailedConsensus:     atomic.LoadInt64(&s.failedConsensus),
		SourcesQueried:      atomic.LoadInt64(&s.sourcesQueried),
		Sources: lo.Map(s.adapters, func(adapter SourceAdapter, _ int) string {
			return adapter.Name()
		}),
	}

	if stats.TotalQueries > 0 {
		stats.SuccessRatePct = 100 * float64(stats.SuccessfulConsensus) / float64(stats.TotalQueries)
		stats.CacheRatePct = 100 * float64(stats.CacheHits) / float64(stats.TotalQueries)
	}

	return stats
}

// cachedRecord looks the record up by sku first, falling back to the free-text
// query when there is no sku match.
func (s *Service) cachedRecord(ctx context.Context, sku, query string) (*models.PriceTruth, error) {
	if sku != "" {
		record, err := s.store.GetPriceTruth(ctx, sku)
		if err != nil {
			return nil, platform.NewStoreError("get_price_truth", err)
		}
		if record != nil {
			return record, nil
		}
	}

	if query == "" {
		return nil, nil
	}

	record, err := s.store.SearchByQuery(ctx, query)
	if err != nil {
		return nil, platform.NewStoreError("search_by_query", err)
	}

	return record, nil
}

// fetchAndCalculate runs one extraction round over all adapters and assembles
// the resulting record. It always produces a record, possibly one with
// insufficient evidence.
func (s *Service) fetchAndCalculate(ctx context.Context, sku, query string) *models.PriceTruth {
	searchTerm := query
	if searchTerm == "" {
		searchTerm = sku
	}

	results := make([]*models.PriceSource, len(s.adapters))

	group := errgroup.Group{}
	group.SetLimit(s.cfg.MaxParallelFetches)
	for ix := range s.adapters {
		ix := ix
		group.Go(func() error {
			results[ix] = s.extractFromSource(ctx, s.adapters[ix], searchTerm)
			return nil
		})
	}
	_ = group.Wait() // adapter failures never abort the round

	sources := lo.FilterMap(results, func(source *models.PriceSource, _ int) (models.PriceSource, bool) {
		if source == nil {
			return models.PriceSource{}, false
		}
		return *source, true
	})

	atomic.AddInt64(&s.sourcesQueried, int64(len(sources)))

	cons := s.calc.Calculate(sources)
	if cons.Status == models.StatusValid {
		atomic.AddInt64(&s.successfulConsensus, 1)
	} else {
		atomic.AddInt64(&s.failedConsensus, 1)
	}

	record := models.PriceTruth{
		SKU:       sku,
		Query:     query,
		Currency:  ReportingCurrency,
		Sources:   sources,
		Consensus: cons,
		UpdatedAt: s.clock.Now(),
		TTLHours:  s.cfg.TTLHours,
	}

	if cons.Status == models.StatusValid {
		record.Value = cons.MedianPrice
	}

	return &record
}

// extractFromSource calls one adapter under the fetch timeout and converts a
// successful extraction into a PriceSource. Failed extractions are logged and
// contribute nothing.
func (s *Service) extractFromSource(
	ctx context.Context,
	adapter SourceAdapter,
	query string,
) *models.PriceSource {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	extraction, err := adapter.ExtractPrice(fetchCtx, query)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("source", adapter.Name()).
			Msg("price extraction failed")
		return nil
	}

	if !extraction.Success || extraction.Price == nil {
		s.logger.Debug().
			Str("source", adapter.Name()).
			Str("reason", lo.FromPtr(extraction.ErrorMessage)).
			Msg("source returned no price")
		return nil
	}

	return &models.PriceSource{
		Name:       adapter.Name(),
		Price:      *extraction.Price,
		Currency:   extraction.Currency,
		URL:        extraction.URL,
		Selector:   extraction.Selector,
		Screenshot: extraction.ScreenshotPath,
		Timestamp:  extraction.Timestamp,
		Success:    true,
	}
}

func lookupKey(sku, query string) string {
	if sku != "" {
		return sku
	}
	return query
}

// WithClock sets Service's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets Service's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
