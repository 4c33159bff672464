package ports

import (
	"context"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

type MenuRepository interface {
	Save(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id int64) (*domain.Menu, error)
	ListOnDate(ctx context.Context, date time.Time) ([]*domain.Menu, error)
	Delete(ctx context.Context, id int64) error
}

type MenuItemInput struct {
	DishID int64 `json:"dish_id"`
	Price  int64 `json:"price"`
}

type MenuInput struct {
	RestaurantID int64
	MenuDate     time.Time
	Items        []MenuItemInput
}

type MenuService interface {
	Create(ctx context.Context, input MenuInput) (*domain.Menu, error)
	Get(ctx context.Context, id int64) (*domain.Menu, error)
	ListOnDate(ctx context.Context, date time.Time) ([]*domain.Menu, error)
	Delete(ctx context.Context, id int64) error
}
