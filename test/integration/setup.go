package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// testClock lets a test move the wall clock across the vote cutoff
// without waiting for real time to pass.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Today() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	year, month, day := c.now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, c.now.Location())
}

func (c *testClock) TimeNow() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) SetTimeOfDay(hour, minute int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	year, month, day := c.now.Date()
	c.now = time.Date(year, month, day, hour, minute, 0, 0, c.now.Location())
}

// unsupportedVerifier stands in for the Google token verifier; the
// integration tests authenticate with locally signed JWTs instead.
type unsupportedVerifier struct{}

func (unsupportedVerifier) Verify(context.Context, string, string) (*ports.TokenPayload, error) {
	return nil, errors.New("google sign-in is not available in tests")
}

func createUserAndToken(t *testing.T, db *sql.DB, role domain.Role) (int64, string) {
	t.Helper()

	email := fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano())

	var userID int64
	err := db.QueryRow(
		"INSERT INTO users (email, first_name, last_name, role) VALUES ($1, $2, $3, $4) RETURNING id",
		email, "Test", "User", string(role),
	).Scan(&userID)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return userID, signedToken
}
