package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type restaurantService struct {
	repo ports.RestaurantRepository
}

func NewRestaurantService(repo ports.RestaurantRepository) ports.RestaurantService {
	return &restaurantService{
		repo: repo,
	}
}

func (s *restaurantService) Create(ctx context.Context, input ports.RestaurantInput) (*domain.Restaurant, error) {
	if input.Name == "" {
		return nil, errors.New("the restaurant must have a name")
	}

	restaurant := &domain.Restaurant{Name: input.Name}
	if err := s.repo.Save(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *restaurantService) Update(ctx context.Context, id int64, input ports.RestaurantInput) (*domain.Restaurant, error) {
	if input.Name == "" {
		return nil, errors.New("the restaurant must have a name")
	}

	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = input.Name
	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *restaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, fmt.Errorf("restaurant %d: %w", id, domain.ErrRestaurantNotFound)
	}
	return restaurant, nil
}

func (s *restaurantService) List(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.repo.ListSortedByName(ctx)
}

func (s *restaurantService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
