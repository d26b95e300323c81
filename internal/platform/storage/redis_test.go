package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/ecomsimply/price-truth/internal/platform/models/modelstesting"
	"github.com/ecomsimply/price-truth/internal/platform/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRedisUpsertAndGet(t *testing.T) {
	store := newRedisStore(t)
	truth := modelstesting.FakePriceTruth(func(tr *models.PriceTruth) {
		tr.SKU = "B0TEST"
		tr.Query = "iphone 15 pro"
	})

	err := store.UpsertPriceTruth(context.Background(), &truth)
	require.NoError(t, err, "shouldn't return any errors")

	t.Run("by sku", func(t *testing.T) {
		got, err := store.GetPriceTruth(context.Background(), "B0TEST")

		require.NoError(t, err, "shouldn't return any errors")
		require.NotNil(t, got, "should return stored record")
		assertSameTruth(t, &truth, got)
	})

	t.Run("by query", func(t *testing.T) {
		got, err := store.SearchByQuery(context.Background(), "iphone 15 pro")

		require.NoError(t, err, "shouldn't return any errors")
		require.NotNil(t, got, "should return stored record")
		assertSameTruth(t, &truth, got)
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := store.GetPriceTruth(context.Background(), "B0UNKNOWN")

		require.NoError(t, err, "missing record shouldn't be an error")
		assert.Nil(t, got, "should return no record")
	})
}

func TestUnitRedisUpsertReplaces(t *testing.T) {
	store := newRedisStore(t)
	truth := modelstesting.FakePriceTruth(func(tr *models.PriceTruth) {
		tr.SKU = "B0TEST"
	})

	require.NoError(t, store.UpsertPriceTruth(context.Background(), &truth), "shouldn't return any errors")

	updated := truth
	updated.UpdatedAt = truth.UpdatedAt.Add(time.Hour)
	require.NoError(t, store.UpsertPriceTruth(context.Background(), &updated), "shouldn't return any errors")

	got, err := store.GetPriceTruth(context.Background(), "B0TEST")

	require.NoError(t, err, "shouldn't return any errors")
	require.NotNil(t, got, "should return stored record")
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt, "should keep the latest version")
}

func TestUnitRedisGetStaleRecords(t *testing.T) {
	store := newRedisStore(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	fresh := modelstesting.FakePriceTruth(func(tr *models.PriceTruth) {
		tr.SKU = "B0FRESH"
		tr.UpdatedAt = now.Add(-time.Hour)
	})
	stale := modelstesting.FakePriceTruth(func(tr *models.PriceTruth) {
		tr.SKU = "B0STALE"
		tr.Query = "stale query"
		tr.UpdatedAt = now.Add(-7 * time.Hour)
	})

	require.NoError(t, store.UpsertPriceTruth(context.Background(), &fresh), "shouldn't return any errors")
	require.NoError(t, store.UpsertPriceTruth(context.Background(), &stale), "shouldn't return any errors")

	got, err := store.GetStaleRecords(context.Background(), 6)

	require.NoError(t, err, "shouldn't return any errors")
	require.Len(t, got, 1, "sku key and query alias should yield one stale record")
	assert.Equal(t, "B0STALE", got[0].SKU, "should return the stale record")
}

func TestUnitRedisEnsureIndexes(t *testing.T) {
	store := newRedisStore(t)

	assert.NoError(t, store.EnsureIndexes(context.Background()), "should ping the server")
}

func newRedisStore(t *testing.T) storage.Redis {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		client.Close()
	})

	return storage.NewRedis(client)
}

// assertSameTruth compares records field by field, prices by value.
func assertSameTruth(t *testing.T, want, got *models.PriceTruth) {
	t.Helper()

	assert.Equal(t, want.SKU, got.SKU, "should keep sku")
	assert.Equal(t, want.Query, got.Query, "should keep query")
	assert.Equal(t, want.Currency, got.Currency, "should keep currency")
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "should keep updated at")
	assert.Equal(t, want.TTLHours, got.TTLHours, "should keep ttl")
	assert.Equal(t, want.Consensus.Status, got.Consensus.Status, "should keep consensus status")
	assert.Equal(t, want.Consensus.AgreeingSources, got.Consensus.AgreeingSources, "should keep agreeing sources")
	require.Len(t, got.Sources, len(want.Sources), "should keep all sources")

	require.NotNil(t, got.Value, "should keep consensus value")
	assert.True(t, want.Value.Equal(*got.Value), "should keep consensus value amount")
}
