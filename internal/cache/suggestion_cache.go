package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pantryops/restockd/internal/config"
	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/engine"
)

const (
	suggestionKeyPrefix     = "restockd:suggestions"
	suggestionScanBatchSize = 100
)

// SuggestionCache stores computed suggestion sets keyed by the options they
// were generated with. Suggestions are derived data, so any write to the
// inventory invalidates everything.
type SuggestionCache interface {
	Get(ctx context.Context, opts engine.SuggestOptions) (*domain.SuggestionSet, bool, error)
	Set(ctx context.Context, opts engine.SuggestOptions, set *domain.SuggestionSet) error
	InvalidateAll(ctx context.Context) error
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSuggestionCache struct{}

func NewSuggestionCache(cfg config.CacheConfig) (SuggestionCache, error) {
	if !cfg.Enabled {
		return &noopSuggestionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSuggestionCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSuggestionCache() SuggestionCache {
	return &noopSuggestionCache{}
}

func (c *redisSuggestionCache) Get(ctx context.Context, opts engine.SuggestOptions) (*domain.SuggestionSet, bool, error) {
	key := buildSuggestionKey(opts)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var set domain.SuggestionSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, false, fmt.Errorf("decode suggestion cache: %w", err)
	}

	return &set, true, nil
}

func (c *redisSuggestionCache) Set(ctx context.Context, opts engine.SuggestOptions, set *domain.SuggestionSet) error {
	key := buildSuggestionKey(opts)
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode suggestion cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSuggestionCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, suggestionKeyPrefix, suggestionScanBatchSize)
}

func (n *noopSuggestionCache) Get(ctx context.Context, opts engine.SuggestOptions) (*domain.SuggestionSet, bool, error) {
	return nil, false, nil
}

func (n *noopSuggestionCache) Set(ctx context.Context, opts engine.SuggestOptions, set *domain.SuggestionSet) error {
	return nil
}

func (n *noopSuggestionCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSuggestionKey(opts engine.SuggestOptions) string {
	return fmt.Sprintf("%s:%s", suggestionKeyPrefix, suggestionOptionsHash(opts))
}

func suggestionOptionsHash(opts engine.SuggestOptions) string {
	raw := fmt.Sprintf("notify=%d|bulk=%d|skip_oos=%t|skip_below=%t|skip_near=%t",
		opts.NotificationThreshold,
		opts.BulkPurchaseThreshold,
		opts.SkipOutOfStock,
		opts.SkipBelowThreshold,
		opts.SkipNearDepletion,
	)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
