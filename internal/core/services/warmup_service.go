package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type warmupService struct {
	voteService ports.VoteService
}

func NewWarmupService(voteService ports.VoteService) ports.WarmupService {
	return &warmupService{
		voteService: voteService,
	}
}

// WarmDistribution runs the distribution query for every date so that
// subsequent reads are served from the cache.
func (s *warmupService) WarmDistribution(ctx context.Context, dates []time.Time) error {
	var wg sync.WaitGroup
	errChan := make(chan error, len(dates))

	for _, date := range dates {
		wg.Add(1)
		go func(d time.Time) {
			defer wg.Done()
			if _, err := s.voteService.DistributionOnDate(ctx, d); err != nil {
				errChan <- fmt.Errorf("failed to warm distribution for %s: %w", d.Format("2006-01-02"), err)
			}
		}(date)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
