package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecomsimply/price-truth/internal/platform/models"
	"github.com/redis/go-redis/v9"
)

const (
	redisSKUPrefix   = "price:truth:sku:"
	redisQueryPrefix = "price:truth:query:"
)

// Redis is storage for price truth records backed by Redis JSON values.
// Records carry no server-side expiry: staleness is computed from UpdatedAt,
// stale records must stay findable for the batch refresh.
type Redis struct {
	client *redis.Client
}

// NewRedis returns new Redis storage.
func NewRedis(client *redis.Client) Redis {
	return Redis{
		client: client,
	}
}

// GetPriceTruth returns the record stored for sku, or nil when there is none.
func (r Redis) GetPriceTruth(ctx context.Context, sku string) (*models.PriceTruth, error) {
	return r.get(ctx, redisSKUPrefix+sku)
}

// SearchByQuery returns the record stored for the free-text query, or nil when there is none.
func (r Redis) SearchByQuery(ctx context.Context, query string) (*models.PriceTruth, error) {
	return r.get(ctx, redisQueryPrefix+query)
}

// UpsertPriceTruth replaces the record under its sku key and query alias key.
func (r Redis) UpsertPriceTruth(ctx context.Context, truth *models.PriceTruth) error {
	raw, err := json.Marshal(truth)
	if err != nil {
		return fmt.Errorf("can't encode price truth: %w", err)
	}

	pipe := r.client.TxPipeline()
	if truth.SKU != "" {
		pipe.Set(ctx, redisSKUPrefix+truth.SKU, raw, 0)
	}
	if truth.Query != "" {
		pipe.Set(ctx, redisQueryPrefix+truth.Query, raw, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("can't store price truth: %w", err)
	}

	return nil
}

// GetStaleRecords returns all records whose updated_at plus ttlHours has elapsed.
func (r Redis) GetStaleRecords(ctx context.Context, ttlHours int) ([]models.PriceTruth, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(ttlHours) * time.Hour)

	stale := []models.PriceTruth{}
	seen := map[string]struct{}{}

	for _, prefix := range []string{redisSKUPrefix, redisQueryPrefix} {
		iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			truth, err := r.get(ctx, iter.Val())
			if err != nil {
				return nil, err
			}
			if truth == nil {
				continue
			}

			// sku key and query alias point at the same record
			if _, ok := seen[truth.Key()]; ok {
				continue
			}
			seen[truth.Key()] = struct{}{}

			if truth.UpdatedAt.Before(cutoff) {
				stale = append(stale, *truth)
			}
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("can't scan price truth keys: %w", err)
		}
	}

	return stale, nil
}

// EnsureIndexes verifies the connection. Redis needs no index setup.
func (r Redis) EnsureIndexes(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r Redis) get(ctx context.Context, key string) (*models.PriceTruth, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get price truth from redis: %w", err)
	}

	var truth models.PriceTruth
	if err := json.Unmarshal([]byte(raw), &truth); err != nil {
		return nil, fmt.Errorf("can't decode stored price truth: %w", err)
	}

	return &truth, nil
}
