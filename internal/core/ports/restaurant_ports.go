package ports

import (
	"context"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

type RestaurantRepository interface {
	Save(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListSortedByName(ctx context.Context) ([]*domain.Restaurant, error)
	Delete(ctx context.Context, id int64) error
	RestaurantResolver
}

type RestaurantInput struct {
	Name string
}

type RestaurantService interface {
	Create(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error)
	Update(ctx context.Context, id int64, input RestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id int64) (*domain.Restaurant, error)
	List(ctx context.Context) ([]*domain.Restaurant, error)
	Delete(ctx context.Context, id int64) error
}
