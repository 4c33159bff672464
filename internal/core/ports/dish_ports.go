package ports

import (
	"context"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

type DishRepository interface {
	Save(ctx context.Context, dish *domain.Dish) error
	Update(ctx context.Context, dish *domain.Dish) error
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)
	ListSortedByName(ctx context.Context) ([]*domain.Dish, error)
	Delete(ctx context.Context, id int64) error
}

type DishInput struct {
	Name string
}

type DishService interface {
	Create(ctx context.Context, input DishInput) (*domain.Dish, error)
	Update(ctx context.Context, id int64, input DishInput) (*domain.Dish, error)
	Get(ctx context.Context, id int64) (*domain.Dish, error)
	List(ctx context.Context) ([]*domain.Dish, error)
	Delete(ctx context.Context, id int64) error
}
