package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type fakeAuthRepo struct {
	tokens map[string]*domain.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *fakeAuthRepo) StoreRefreshToken(_ context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	copied := *token
	r.tokens[token.TokenHash] = &copied
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(_ context.Context, id string) error {
	for _, token := range r.tokens {
		if token.ID.String() == id {
			token.Revoked = true
		}
	}
	return nil
}

type fakeVerifier struct {
	payload *ports.TokenPayload
}

func (v *fakeVerifier) Verify(_ context.Context, _ string, _ string) (*ports.TokenPayload, error) {
	return v.payload, nil
}

func TestLoginWithGoogleCreatesUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, newFakeAuthRepo(), &fakeVerifier{
		payload: &ports.TokenPayload{Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe"},
	}, "test-secret", "client-id")

	accessToken, refreshToken, err := service.LoginWithGoogle(context.Background(), "google-token")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	user, err := userRepo.GetByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Enabled)

	userID, role, err := service.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), newFakeAuthRepo(), &fakeVerifier{}, "test-secret", "client-id")

	_, _, err := service.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	service := NewAuthService(userRepo, authRepo, &fakeVerifier{
		payload: &ports.TokenPayload{Email: "jane.doe@example.com"},
	}, "test-secret", "client-id")

	_, refreshToken, err := service.LoginWithGoogle(context.Background(), "google-token")
	require.NoError(t, err)

	accessToken, returnedRefresh, err := service.RefreshAccessToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.Equal(t, refreshToken, returnedRefresh)

	_, _, err = service.RefreshAccessToken(context.Background(), "unknown-token")
	assert.ErrorContains(t, err, "not found")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	authRepo := newFakeAuthRepo()
	service := NewAuthService(newFakeUserRepo(), authRepo, &fakeVerifier{
		payload: &ports.TokenPayload{Email: "jane.doe@example.com"},
	}, "test-secret", "client-id")

	_, refreshToken, err := service.LoginWithGoogle(context.Background(), "google-token")
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), refreshToken))

	_, _, err = service.RefreshAccessToken(context.Background(), refreshToken)
	assert.ErrorContains(t, err, "revoked")
}
