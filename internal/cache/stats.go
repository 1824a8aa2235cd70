package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/community-hub/internal/model"
	"github.com/redis/go-redis/v9"
)

// StatsKey holds the serialized community stats snapshot.
const StatsKey = "community:stats"

// ErrMiss is returned by Get when no snapshot is cached.
var ErrMiss = errors.New("cache miss")

// StatsSnapshots stores the community stats row in Redis.
type StatsSnapshots struct {
	client *redis.Client
}

// NewStatsSnapshots wraps client.
func NewStatsSnapshots(client *redis.Client) *StatsSnapshots {
	return &StatsSnapshots{client: client}
}

// Get returns the cached snapshot or ErrMiss.
func (c *StatsSnapshots) Get(ctx context.Context) (*model.CommunityStats, error) {
	raw, err := c.client.Get(ctx, StatsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get stats snapshot: %w", err)
	}
	var s model.CommunityStats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode stats snapshot: %w", err)
	}
	return &s, nil
}

// Put caches s for ttl. A non-positive ttl is a no-op.
func (c *StatsSnapshots) Put(ctx context.Context, s *model.CommunityStats, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode stats snapshot: %w", err)
	}
	if err := c.client.Set(ctx, StatsKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put stats snapshot: %w", err)
	}
	return nil
}
