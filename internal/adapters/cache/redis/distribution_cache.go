package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

const (
	distributionKeyPrefix = "vote_distribution:"
	// Entries expire on their own after a day; explicit invalidation on
	// every vote mutation is what keeps reads fresh within the day.
	distributionTTL = 24 * time.Hour
)

// NewClient connects to Redis and verifies the connection.
func NewClient(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}

type distributionCache struct {
	client *redis.Client
}

func NewDistributionCache(client *redis.Client) ports.DistributionCache {
	return &distributionCache{
		client: client,
	}
}

func (c *distributionCache) Get(ctx context.Context, date time.Time) ([]domain.VoteDistribution, bool, error) {
	payload, err := c.client.Get(ctx, distributionKey(date)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get distribution from redis: %w", err)
	}

	var dist []domain.VoteDistribution
	if err := json.Unmarshal([]byte(payload), &dist); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached distribution: %w", err)
	}

	return dist, true, nil
}

func (c *distributionCache) Set(ctx context.Context, date time.Time, dist []domain.VoteDistribution) error {
	payload, err := json.Marshal(dist)
	if err != nil {
		return fmt.Errorf("failed to marshal distribution: %w", err)
	}

	if err := c.client.Set(ctx, distributionKey(date), payload, distributionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store distribution in redis: %w", err)
	}

	return nil
}

func (c *distributionCache) Invalidate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, distributionKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate distribution in redis: %w", err)
	}
	return nil
}

func distributionKey(date time.Time) string {
	return distributionKeyPrefix + date.Format("2006-01-02")
}
