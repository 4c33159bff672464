package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type menuService struct {
	repo        ports.MenuRepository
	restaurants ports.RestaurantResolver
}

func NewMenuService(repo ports.MenuRepository, restaurants ports.RestaurantResolver) ports.MenuService {
	return &menuService{
		repo:        repo,
		restaurants: restaurants,
	}
}

func (s *menuService) Create(ctx context.Context, input ports.MenuInput) (*domain.Menu, error) {
	if input.MenuDate.IsZero() {
		return nil, errors.New("the menu must have a date")
	}
	if len(input.Items) == 0 {
		return nil, errors.New("the menu must have at least one item")
	}
	for _, item := range input.Items {
		if item.Price <= 0 {
			return nil, fmt.Errorf("invalid price %d for dish %d", item.Price, item.DishID)
		}
	}

	rid, err := s.restaurants.ResolveRestaurantRef(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	menu := &domain.Menu{
		RestaurantID: rid,
		MenuDate:     input.MenuDate,
	}
	for _, item := range input.Items {
		menu.Items = append(menu.Items, domain.MenuItem{
			DishID: item.DishID,
			Price:  item.Price,
		})
	}

	if err := s.repo.Save(ctx, menu); err != nil {
		return nil, err
	}

	return s.Get(ctx, menu.ID)
}

func (s *menuService) Get(ctx context.Context, id int64) (*domain.Menu, error) {
	menu, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, fmt.Errorf("menu %d: %w", id, domain.ErrMenuNotFound)
	}
	return menu, nil
}

func (s *menuService) ListOnDate(ctx context.Context, date time.Time) ([]*domain.Menu, error) {
	return s.repo.ListOnDate(ctx, date)
}

func (s *menuService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
