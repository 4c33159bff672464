package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

func TestRestaurantCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)

	restaurant := app.createRestaurant(t, adminToken, "Pasta Place")
	require.NotZero(t, restaurant.ID)

	// Duplicate names are rejected.
	body, _ := json.Marshal(map[string]string{"name": "Pasta Place"})
	resp := app.do(t, http.MethodPost, "/api/restaurants", adminToken, body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	body, _ = json.Marshal(map[string]string{"name": "Pizza Corner"})
	resp = app.do(t, http.MethodPut, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), adminToken, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Restaurant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, "Pizza Corner", updated.Name)

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), adminToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRestaurantWritesRequireAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)
	_, userToken := createUserAndToken(t, app.DB, domain.RoleUser)

	restaurant := app.createRestaurant(t, adminToken, "Pasta Place")

	body, _ := json.Marshal(map[string]string{"name": "Sushi Bar"})
	resp := app.do(t, http.MethodPost, "/api/restaurants", userToken, body)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Reads stay open to any authenticated user.
	resp = app.do(t, http.MethodGet, "/api/restaurants", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var restaurants []domain.Restaurant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&restaurants))
	resp.Body.Close()
	assert.Len(t, restaurants, 1)

	// Unauthenticated requests are rejected outright.
	resp = app.do(t, http.MethodGet, "/api/restaurants", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
