package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type voteService struct {
	voteRepo    ports.VoteRepository
	restaurants ports.RestaurantResolver
	users       ports.UserResolver
	cache       ports.DistributionCache
	clock       ports.Clock
	// timeConstraint is the daily cutoff, as an offset from midnight.
	// Changing or cancelling a vote is allowed until this time; a first
	// vote of the day is always allowed.
	timeConstraint time.Duration
}

func NewVoteService(
	voteRepo ports.VoteRepository,
	restaurants ports.RestaurantResolver,
	users ports.UserResolver,
	cache ports.DistributionCache,
	clock ports.Clock,
	timeConstraint time.Duration,
) ports.VoteService {
	return &voteService{
		voteRepo:       voteRepo,
		restaurants:    restaurants,
		users:          users,
		cache:          cache,
		clock:          clock,
		timeConstraint: timeConstraint,
	}
}

func (s *voteService) Get(ctx context.Context, id, userID int64) (*domain.Vote, error) {
	vote, err := s.voteRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, fmt.Errorf("vote %d: %w", id, domain.ErrVoteNotFound)
	}
	return vote, nil
}

func (s *voteService) ListForUser(ctx context.Context, userID int64) ([]*domain.Vote, error) {
	return s.voteRepo.ListByUser(ctx, userID)
}

// Cast records or replaces the caller's vote for today. A first vote of
// the day is accepted at any time; changing an existing vote is rejected
// once the current time is past the cutoff.
func (s *voteService) Cast(ctx context.Context, restaurantID, userID int64) (*domain.Vote, error) {
	today := s.clock.Today()

	vote, err := s.voteRepo.GetByDateAndUser(ctx, today, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.TimeNow()
	if vote == nil {
		uid, err := s.users.ResolveUserRef(ctx, userID)
		if err != nil {
			return nil, err
		}
		vote = &domain.Vote{UserID: uid, VoteDate: today}
	} else if timeOfDay(now) > s.timeConstraint {
		return nil, s.timeConstraintError()
	}

	rid, err := s.restaurants.ResolveRestaurantRef(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			return nil, fmt.Errorf("restaurant %d does not exist: %w", restaurantID, domain.ErrVoteConflict)
		}
		return nil, err
	}

	vote.RestaurantID = rid
	vote.VoteTime = now

	if err := s.voteRepo.Save(ctx, vote); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, vote.VoteDate); err != nil {
		return nil, fmt.Errorf("failed to invalidate distribution cache: %w", err)
	}

	return vote, nil
}

// Cancel removes the caller's vote for today. The cutoff is checked
// before existence, so a late cancel always reports the time error.
func (s *voteService) Cancel(ctx context.Context, userID int64) error {
	if timeOfDay(s.clock.TimeNow()) > s.timeConstraint {
		return s.timeConstraintError()
	}

	today := s.clock.Today()
	deleted, err := s.voteRepo.DeleteByDateAndUser(ctx, today, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("vote of user %d for %s: %w", userID, today.Format("2006-01-02"), domain.ErrVoteNotFound)
	}

	if err := s.cache.Invalidate(ctx, today); err != nil {
		return fmt.Errorf("failed to invalidate distribution cache: %w", err)
	}

	return nil
}

// DistributionOnDate returns the per-restaurant vote counts for the
// given date, ordered by count descending. Restaurants without votes on
// that date are not listed. Results are cached per date and invalidated
// by every mutating path.
func (s *voteService) DistributionOnDate(ctx context.Context, date time.Time) ([]domain.VoteDistribution, error) {
	dist, ok, err := s.cache.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if ok {
		return dist, nil
	}

	dist, err = s.voteRepo.DistributionOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, date, dist); err != nil {
		return nil, fmt.Errorf("failed to cache distribution: %w", err)
	}

	return dist, nil
}

func (s *voteService) timeConstraintError() error {
	return fmt.Errorf("you can only change your vote until %s: %w", FormatTimeOfDay(s.timeConstraint), domain.ErrVoteTimeConstraint)
}

func timeOfDay(t time.Time) time.Duration {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)
}

// ParseTimeOfDay parses a "15:04" or "15:04:05" value into an offset
// from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	layout := "15:04"
	if len(s) > len(layout) {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return timeOfDay(t), nil
}

func FormatTimeOfDay(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
