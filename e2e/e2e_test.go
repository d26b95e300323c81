package e2e

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecomsimply/price-truth/e2e/helpers"
	"github.com/ecomsimply/price-truth/internal/consensus"
	"github.com/ecomsimply/price-truth/internal/fetcher"
	"github.com/ecomsimply/price-truth/internal/platform/storage"
	"github.com/ecomsimply/price-truth/internal/truth"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

const (
	userAgent = "price-truth-e2e/0.0.1"
	query     = "iphone 15 pro"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	client  *redis.Client
	store   storage.Redis
	service *truth.Service
}

func (s *E2ETestSuite) SetupTest() {
	srv := miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	s.store = storage.NewRedis(s.client)

	fet := fetcher.NewFetcher(http.DefaultClient, userAgent)

	sources := []truth.SourceAdapter{
		helpers.NewRetailerSource(s.T(), "amazon", fet, helpers.NewRetailerServer(s.T(), "1199.00")),
		helpers.NewRetailerSource(s.T(), "fnac", fet, helpers.NewRetailerServer(s.T(), "1 189,99")),
		helpers.NewRetailerSource(s.T(), "cdiscount", fet, helpers.NewRetailerServer(s.T(), "1195.00")),
		helpers.NewRetailerSource(s.T(), "google_shopping", fet, helpers.NewUnavailableServer(s.T())),
	}

	s.service = truth.NewService(
		truth.Config{
			Enabled:            true,
			TTLHours:           6,
			FetchTimeout:       5 * time.Second,
			MaxParallelFetches: 3,
		},
		s.store,
		sources,
		consensus.NewCalculator(3.0, 2),
	)
}

func (s *E2ETestSuite) TearDownTest() {
	if err := s.client.Close(); err != nil {
		s.FailNow("close redis client", err)
	}
}

func (s *E2ETestSuite) TestE2EPriceLookup() {
	response, err := s.service.GetPriceTruth(context.Background(), "", query, false)

	s.Require().NoError(err, "shouldn't return any errors")
	s.Require().NotNil(response, "should return a response")
	s.Equal("valid", string(response.Status), "three agreeing retailers should reach consensus")
	s.Require().NotNil(response.Price, "should return a price")
	s.Equal(1195.0, *response.Price, "should return the median retailer price")
	s.Equal(3, response.SourcesCount, "unavailable retailer shouldn't count as a source")
	s.Equal(3, response.AgreeingSources, "all successful retailers should agree")
	s.True(response.IsFresh, "freshly computed record should be fresh")

	s.Run("served from cache", func() {
		again, err := s.service.GetPriceTruth(context.Background(), "", query, false)

		s.Require().NoError(err, "shouldn't return any errors")
		s.Require().NotNil(again, "should return a response")
		s.Equal(*response.Price, *again.Price, "should return the cached price")
		s.Equal(int64(1), s.service.Stats().CacheHits, "second lookup should hit the cache")
	})
}

func (s *E2ETestSuite) TestE2EStaleRefresh() {
	_, err := s.service.GetPriceTruth(context.Background(), "", query, false)
	s.Require().NoError(err, "shouldn't return any errors")

	// age the stored record past its TTL window
	record, err := s.store.SearchByQuery(context.Background(), query)
	s.Require().NoError(err, "shouldn't return any errors")
	s.Require().NotNil(record, "record should be stored")
	record.UpdatedAt = record.UpdatedAt.Add(-7 * time.Hour)
	s.Require().NoError(s.store.UpsertPriceTruth(context.Background(), record), "shouldn't return any errors")

	summary, err := s.service.RefreshStalePrices(context.Background())

	s.Require().NoError(err, "shouldn't return any errors")
	s.Equal(1, summary.Found, "should find the aged record")
	s.Equal(1, summary.Refreshed, "should refresh the aged record")
	s.Zero(summary.Errors, "shouldn't count any errors")

	refreshed, err := s.store.SearchByQuery(context.Background(), query)
	s.Require().NoError(err, "shouldn't return any errors")
	s.Require().NotNil(refreshed, "record should still be stored")
	s.True(refreshed.IsFresh(time.Now().UTC()), "refreshed record should be fresh again")
}
