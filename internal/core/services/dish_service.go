package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type dishService struct {
	repo ports.DishRepository
}

func NewDishService(repo ports.DishRepository) ports.DishService {
	return &dishService{
		repo: repo,
	}
}

func (s *dishService) Create(ctx context.Context, input ports.DishInput) (*domain.Dish, error) {
	if input.Name == "" {
		return nil, errors.New("the dish must have a name")
	}

	dish := &domain.Dish{Name: input.Name}
	if err := s.repo.Save(ctx, dish); err != nil {
		return nil, err
	}

	return dish, nil
}

func (s *dishService) Update(ctx context.Context, id int64, input ports.DishInput) (*domain.Dish, error) {
	if input.Name == "" {
		return nil, errors.New("the dish must have a name")
	}

	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dish.Name = input.Name
	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, err
	}

	return dish, nil
}

func (s *dishService) Get(ctx context.Context, id int64) (*domain.Dish, error) {
	dish, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, fmt.Errorf("dish %d: %w", id, domain.ErrDishNotFound)
	}
	return dish, nil
}

func (s *dishService) List(ctx context.Context) ([]*domain.Dish, error) {
	return s.repo.ListSortedByName(ctx)
}

func (s *dishService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
