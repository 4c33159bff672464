// Package clock provides the system clock adapter.
package clock

import (
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type systemClock struct{}

func NewSystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (systemClock) TimeNow() time.Time {
	return time.Now()
}
