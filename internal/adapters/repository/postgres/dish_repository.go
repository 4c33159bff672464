package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type dishRepository struct {
	db *sql.DB
}

func NewDishRepository(db *sql.DB) ports.DishRepository {
	return &dishRepository{
		db: db,
	}
}

func (r *dishRepository) Save(ctx context.Context, dish *domain.Dish) error {
	query := `INSERT INTO dishes (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, dish.Name).Scan(&dish.ID, &dish.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("dish %q: %w", dish.Name, domain.ErrNameTaken)
		}
		return fmt.Errorf("failed to insert dish: %w", err)
	}
	return nil
}

func (r *dishRepository) Update(ctx context.Context, dish *domain.Dish) error {
	query := `UPDATE dishes SET name = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, dish.Name, dish.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("dish %q: %w", dish.Name, domain.ErrNameTaken)
		}
		return fmt.Errorf("failed to update dish: %w", err)
	}
	return nil
}

func (r *dishRepository) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	query := `SELECT id, name, created_at FROM dishes WHERE id = $1`
	dish := &domain.Dish{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&dish.ID, &dish.Name, &dish.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	return dish, nil
}

func (r *dishRepository) ListSortedByName(ctx context.Context) ([]*domain.Dish, error) {
	query := `SELECT id, name, created_at FROM dishes ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	var dishes []*domain.Dish
	for rows.Next() {
		dish := &domain.Dish{}
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

func (r *dishRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return nil
}
