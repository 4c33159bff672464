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

func TestGetMe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID, userToken := createUserAndToken(t, app.DB, domain.RoleUser)

	resp := app.do(t, http.MethodGet, "/api/users/me", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	resp.Body.Close()

	assert.Equal(t, userID, me.ID)
	assert.Equal(t, domain.RoleUser, me.Role)
}

func TestUserAdministration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := createUserAndToken(t, app.DB, domain.RoleAdmin)
	_, userToken := createUserAndToken(t, app.DB, domain.RoleUser)

	// Only admins may manage accounts.
	resp := app.do(t, http.MethodGet, "/api/users", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	createPayload := map[string]interface{}{
		"email":      "New.Person@Example.com",
		"first_name": "New",
		"last_name":  "Person",
		"enabled":    true,
	}
	body, _ := json.Marshal(createPayload)
	resp = app.do(t, http.MethodPost, "/api/users", adminToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// Emails are normalized and the role defaults to user.
	assert.Equal(t, "new.person@example.com", created.Email)
	assert.Equal(t, domain.RoleUser, created.Role)

	// Creating the same email again conflicts.
	resp = app.do(t, http.MethodPost, "/api/users", adminToken, body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	updatePayload := map[string]interface{}{
		"email":      created.Email,
		"first_name": "New",
		"last_name":  "Person",
		"role":       "admin",
		"enabled":    true,
	}
	body, _ = json.Marshal(updatePayload)
	resp = app.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), adminToken, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
