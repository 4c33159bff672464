package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type menuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) ports.MenuRepository {
	return &menuRepository{
		db: db,
	}
}

func (r *menuRepository) Save(ctx context.Context, menu *domain.Menu) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryMenu := `
		INSERT INTO menus (restaurant_id, menu_date)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, queryMenu, menu.RestaurantID, menu.MenuDate.Format(dateLayout)).
		Scan(&menu.ID, &menu.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("menu of restaurant %d for %s: %w", menu.RestaurantID, menu.MenuDate.Format(dateLayout), domain.ErrDuplicateMenu)
		}
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	queryItem := `
		INSERT INTO menu_items (menu_id, dish_id, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	stmt, err := tx.PrepareContext(ctx, queryItem)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range menu.Items {
		item := &menu.Items[i]
		item.MenuID = menu.ID
		if err := stmt.QueryRowContext(ctx, item.MenuID, item.DishID, item.Price).Scan(&item.ID); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("dish %d: %w", item.DishID, domain.ErrDishNotFound)
			}
			return fmt.Errorf("failed to insert menu item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*domain.Menu, error) {
	query := `SELECT id, restaurant_id, menu_date, created_at FROM menus WHERE id = $1`

	var menu domain.Menu
	err := r.db.QueryRowContext(ctx, query, id).Scan(&menu.ID, &menu.RestaurantID, &menu.MenuDate, &menu.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	items, err := r.fetchItems(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	menu.Items = items

	return &menu, nil
}

func (r *menuRepository) ListOnDate(ctx context.Context, date time.Time) ([]*domain.Menu, error) {
	query := `SELECT id, restaurant_id, menu_date, created_at FROM menus WHERE menu_date = $1 ORDER BY restaurant_id`

	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		menu := &domain.Menu{}
		if err := rows.Scan(&menu.ID, &menu.RestaurantID, &menu.MenuDate, &menu.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	for _, menu := range menus {
		items, err := r.fetchItems(ctx, menu.ID)
		if err != nil {
			return nil, err
		}
		menu.Items = items
	}

	return menus, nil
}

func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	return nil
}

func (r *menuRepository) fetchItems(ctx context.Context, menuID int64) ([]domain.MenuItem, error) {
	query := `
		SELECT i.id, i.menu_id, i.dish_id, d.name, i.price
		FROM menu_items i
		JOIN dishes d ON d.id = i.dish_id
		WHERE i.menu_id = $1
		ORDER BY d.name
	`

	rows, err := r.db.QueryContext(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.MenuID, &item.DishID, &item.DishName, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}
