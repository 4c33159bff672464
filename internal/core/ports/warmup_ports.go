package ports

import (
	"context"
	"time"
)

// WarmupService precomputes distribution cache entries for a set of dates.
type WarmupService interface {
	WarmDistribution(ctx context.Context, dates []time.Time) error
}
