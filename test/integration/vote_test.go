package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/FlintbyyS/voteforlunch/internal/adapters/cache/memory"
	handler "github.com/FlintbyyS/voteforlunch/internal/adapters/handler/http"
	repo "github.com/FlintbyyS/voteforlunch/internal/adapters/repository/postgres"
	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Clock       *testClock
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	clk := newTestClock(time.Date(2023, 4, 21, 9, 30, 0, 0, time.Local))

	userRepo := repo.NewUserRepository(db)
	restaurantRepo := repo.NewRestaurantRepository(db)
	dishRepo := repo.NewDishRepository(db)
	menuRepo := repo.NewMenuRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	authRepo := repo.NewAuthRepository(db)

	cache := memory.NewDistributionCache()

	authSvc := services.NewAuthService(userRepo, authRepo, unsupportedVerifier{}, "test-secret", "")
	userSvc := services.NewUserService(userRepo)
	restaurantSvc := services.NewRestaurantService(restaurantRepo)
	dishSvc := services.NewDishService(dishRepo)
	menuSvc := services.NewMenuService(menuRepo, restaurantRepo)
	voteSvc := services.NewVoteService(voteRepo, restaurantRepo, userRepo, cache, clk, 11*time.Hour)

	router := handler.NewHandler(
		handler.NewAuthMiddleware(authSvc),
		handler.NewAuthHandler(authSvc, "/", "", http.SameSiteLaxMode),
		handler.NewUserHandler(userSvc),
		handler.NewRestaurantHandler(restaurantSvc),
		handler.NewDishHandler(dishSvc),
		handler.NewMenuHandler(menuSvc),
		handler.NewVoteHandler(voteSvc),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Clock:       clk,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) do(t *testing.T, method, path, token string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, app.Server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) createRestaurant(t *testing.T, adminToken, name string) domain.Restaurant {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"name": name})
	resp := app.do(t, http.MethodPost, "/api/restaurants", adminToken, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var restaurant domain.Restaurant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&restaurant))
	return restaurant
}

type voteBody struct {
	ID             int64  `json:"id"`
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	VoteDate       string `json:"vote_date"`
	VoteTime       string `json:"vote_time"`
}

type distributionBody struct {
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	VoteCount      int64  `json:"vote_count"`
}

// TestVoteLifecycle walks the daily voting flow over HTTP: cast, change
// before the cutoff, get blocked after it, and cancel.
func TestVoteLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)
	_, userToken := createUserAndToken(t, app.DB, domain.RoleUser)

	pasta := app.createRestaurant(t, adminToken, "Pasta Place")
	sushi := app.createRestaurant(t, adminToken, "Sushi Bar")

	// 1. Cast a first vote.
	resp := app.do(t, http.MethodPost, fmt.Sprintf("/api/votes?restaurantId=%d", pasta.ID), userToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vote voteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vote))
	resp.Body.Close()
	assert.Equal(t, pasta.ID, vote.RestaurantID)
	assert.Equal(t, "2023-04-21", vote.VoteDate)

	// 2. Change it before the cutoff; still one row for the day.
	resp = app.do(t, http.MethodPut, fmt.Sprintf("/api/votes?restaurantId=%d", sushi.ID), userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changed voteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&changed))
	resp.Body.Close()
	assert.Equal(t, vote.ID, changed.ID)
	assert.Equal(t, sushi.ID, changed.RestaurantID)

	var count int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE vote_date = '2023-04-21'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 3. After the cutoff a change is rejected and the vote stays.
	app.Clock.SetTimeOfDay(11, 1)
	resp = app.do(t, http.MethodPut, fmt.Sprintf("/api/votes?restaurantId=%d", pasta.ID), userToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	var restaurantID int64
	err = app.DB.QueryRow("SELECT restaurant_id FROM votes WHERE id = $1", vote.ID).Scan(&restaurantID)
	require.NoError(t, err)
	assert.Equal(t, sushi.ID, restaurantID)

	// 4. Cancelling after the cutoff is rejected too.
	resp = app.do(t, http.MethodDelete, "/api/votes", userToken, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// 5. A first vote of the day is allowed even after the cutoff.
	_, lateToken := createUserAndToken(t, app.DB, domain.RoleUser)
	resp = app.do(t, http.MethodPost, fmt.Sprintf("/api/votes?restaurantId=%d", pasta.ID), lateToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// 6. Back before the cutoff, cancelling removes the vote.
	app.Clock.SetTimeOfDay(10, 0)
	resp = app.do(t, http.MethodDelete, "/api/votes", userToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	err = app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE vote_date = '2023-04-21'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 7. Cancelling again reports no vote for today.
	resp = app.do(t, http.MethodDelete, "/api/votes", userToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestVoteDistribution checks the cached per-date aggregation stays in
// sync with vote mutations.
func TestVoteDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)
	pasta := app.createRestaurant(t, adminToken, "Pasta Place")
	sushi := app.createRestaurant(t, adminToken, "Sushi Bar")

	getDistribution := func() []distributionBody {
		resp := app.do(t, http.MethodGet, "/api/votes/distribution?date=2023-04-21", adminToken, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var dist []distributionBody
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dist))
		return dist
	}

	// No votes yet; an empty distribution is cached as well.
	assert.Empty(t, getDistribution())

	tokens := make([]string, 3)
	for i := range tokens {
		_, tokens[i] = createUserAndToken(t, app.DB, domain.RoleUser)
	}

	for _, token := range tokens[:2] {
		resp := app.do(t, http.MethodPost, fmt.Sprintf("/api/votes?restaurantId=%d", pasta.ID), token, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := app.do(t, http.MethodPost, fmt.Sprintf("/api/votes?restaurantId=%d", sushi.ID), tokens[2], nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	dist := getDistribution()
	require.Len(t, dist, 2)
	assert.Equal(t, distributionBody{RestaurantID: pasta.ID, RestaurantName: "Pasta Place", VoteCount: 2}, dist[0])
	assert.Equal(t, distributionBody{RestaurantID: sushi.ID, RestaurantName: "Sushi Bar", VoteCount: 1}, dist[1])

	// A cancelled vote drops out of the distribution.
	resp = app.do(t, http.MethodDelete, "/api/votes", tokens[2], nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	dist = getDistribution()
	require.Len(t, dist, 1)
	assert.Equal(t, int64(2), dist[0].VoteCount)
}

func TestListAndGetVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)
	_, userToken := createUserAndToken(t, app.DB, domain.RoleUser)
	pasta := app.createRestaurant(t, adminToken, "Pasta Place")

	resp := app.do(t, http.MethodPost, fmt.Sprintf("/api/votes?restaurantId=%d", pasta.ID), userToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var vote voteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vote))
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, "/api/votes", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var votes []voteBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&votes))
	resp.Body.Close()
	require.Len(t, votes, 1)
	assert.Equal(t, "Pasta Place", votes[0].RestaurantName)

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/votes/%d", vote.ID), userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Another user cannot read this vote.
	_, otherToken := createUserAndToken(t, app.DB, domain.RoleUser)
	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/votes/%d", vote.ID), otherToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestVoteForUnknownRestaurant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, userToken := createUserAndToken(t, app.DB, domain.RoleUser)

	resp := app.do(t, http.MethodPost, "/api/votes?restaurantId=9999", userToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
