package ports

import (
	"context"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

type VoteRepository interface {
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Vote, error)
	GetByDateAndUser(ctx context.Context, date time.Time, userID int64) (*domain.Vote, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Vote, error)
	// Save inserts the vote when its ID is unset and updates it otherwise.
	Save(ctx context.Context, vote *domain.Vote) error
	// DeleteByDateAndUser returns the number of rows removed.
	DeleteByDateAndUser(ctx context.Context, date time.Time, userID int64) (int64, error)
	DistributionOnDate(ctx context.Context, date time.Time) ([]domain.VoteDistribution, error)
}

// RestaurantResolver checks a restaurant id exists without loading the entity.
type RestaurantResolver interface {
	ResolveRestaurantRef(ctx context.Context, id int64) (int64, error)
}

// UserResolver checks a user id exists without loading the entity.
type UserResolver interface {
	ResolveUserRef(ctx context.Context, id int64) (int64, error)
}

// DistributionCache memoizes vote distributions per calendar date.
type DistributionCache interface {
	Get(ctx context.Context, date time.Time) ([]domain.VoteDistribution, bool, error)
	Set(ctx context.Context, date time.Time, dist []domain.VoteDistribution) error
	Invalidate(ctx context.Context, date time.Time) error
}

type VoteService interface {
	Get(ctx context.Context, id, userID int64) (*domain.Vote, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Vote, error)
	Cast(ctx context.Context, restaurantID, userID int64) (*domain.Vote, error)
	Cancel(ctx context.Context, userID int64) error
	DistributionOnDate(ctx context.Context, date time.Time) ([]domain.VoteDistribution, error)
}
