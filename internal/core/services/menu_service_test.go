package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type fakeMenuRepo struct {
	menus  map[int64]*domain.Menu
	nextID int64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{menus: make(map[int64]*domain.Menu), nextID: 1}
}

func (r *fakeMenuRepo) Save(_ context.Context, menu *domain.Menu) error {
	for _, existing := range r.menus {
		if existing.RestaurantID == menu.RestaurantID && existing.MenuDate.Equal(menu.MenuDate) {
			return domain.ErrDuplicateMenu
		}
	}
	menu.ID = r.nextID
	r.nextID++
	copied := *menu
	r.menus[menu.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id int64) (*domain.Menu, error) {
	menu, ok := r.menus[id]
	if !ok {
		return nil, nil
	}
	copied := *menu
	return &copied, nil
}

func (r *fakeMenuRepo) ListOnDate(_ context.Context, date time.Time) ([]*domain.Menu, error) {
	var menus []*domain.Menu
	for _, menu := range r.menus {
		if menu.MenuDate.Equal(date) {
			copied := *menu
			menus = append(menus, &copied)
		}
	}
	return menus, nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id int64) error {
	delete(r.menus, id)
	return nil
}

func menuDate() time.Time {
	return time.Date(2023, 4, 21, 0, 0, 0, 0, time.UTC)
}

func TestCreateMenu(t *testing.T) {
	repo := newFakeMenuRepo()
	service := NewMenuService(repo, &fakeResolver{restaurants: map[int64]string{10: "Restaurant One"}})

	menu, err := service.Create(context.Background(), ports.MenuInput{
		RestaurantID: 10,
		MenuDate:     menuDate(),
		Items: []ports.MenuItemInput{
			{DishID: 1, Price: 500},
			{DishID: 2, Price: 750},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, menu.ID)
	assert.Equal(t, int64(10), menu.RestaurantID)
	assert.Len(t, menu.Items, 2)
}

func TestCreateMenuValidation(t *testing.T) {
	repo := newFakeMenuRepo()
	service := NewMenuService(repo, &fakeResolver{restaurants: map[int64]string{10: "Restaurant One"}})

	_, err := service.Create(context.Background(), ports.MenuInput{RestaurantID: 10, MenuDate: menuDate()})
	assert.ErrorContains(t, err, "at least one item")

	_, err = service.Create(context.Background(), ports.MenuInput{
		RestaurantID: 10,
		MenuDate:     menuDate(),
		Items:        []ports.MenuItemInput{{DishID: 1, Price: 0}},
	})
	assert.ErrorContains(t, err, "invalid price")

	_, err = service.Create(context.Background(), ports.MenuInput{
		RestaurantID: 99,
		MenuDate:     menuDate(),
		Items:        []ports.MenuItemInput{{DishID: 1, Price: 500}},
	})
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestCreateMenuDuplicateDate(t *testing.T) {
	repo := newFakeMenuRepo()
	service := NewMenuService(repo, &fakeResolver{restaurants: map[int64]string{10: "Restaurant One"}})

	input := ports.MenuInput{
		RestaurantID: 10,
		MenuDate:     menuDate(),
		Items:        []ports.MenuItemInput{{DishID: 1, Price: 500}},
	}

	_, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrDuplicateMenu)
}

func TestGetMenuNotFound(t *testing.T) {
	service := NewMenuService(newFakeMenuRepo(), &fakeResolver{})

	_, err := service.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}
