package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type restaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) ports.RestaurantRepository {
	return &restaurantRepository{
		db: db,
	}
}

func (r *restaurantRepository) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `INSERT INTO restaurants (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, restaurant.Name).Scan(&restaurant.ID, &restaurant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, domain.ErrNameTaken)
		}
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `UPDATE restaurants SET name = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, restaurant.Name, restaurant.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, domain.ErrNameTaken)
		}
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT id, name, created_at FROM restaurants WHERE id = $1`
	restaurant := &domain.Restaurant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) ListSortedByName(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `SELECT id, name, created_at FROM restaurants ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		restaurant := &domain.Restaurant{}
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

// ResolveRestaurantRef checks the id exists without loading the row.
func (r *restaurantRepository) ResolveRestaurantRef(ctx context.Context, id int64) (int64, error) {
	var ref int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM restaurants WHERE id = $1`, id).Scan(&ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("restaurant %d: %w", id, domain.ErrRestaurantNotFound)
		}
		return 0, fmt.Errorf("failed to resolve restaurant: %w", err)
	}
	return ref, nil
}
