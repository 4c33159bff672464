// Package memory holds an in-process distribution cache. It backs tests
// and deployments without a Redis instance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type distributionCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.VoteDistribution
}

func NewDistributionCache() ports.DistributionCache {
	return &distributionCache{
		entries: make(map[string][]domain.VoteDistribution),
	}
}

func (c *distributionCache) Get(_ context.Context, date time.Time) ([]domain.VoteDistribution, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dist, ok := c.entries[key(date)]
	return dist, ok, nil
}

func (c *distributionCache) Set(_ context.Context, date time.Time, dist []domain.VoteDistribution) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key(date)] = dist
	return nil
}

func (c *distributionCache) Invalidate(_ context.Context, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key(date))
	return nil
}

func key(date time.Time) string {
	return date.Format("2006-01-02")
}
