package ports

import (
	"context"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
}

type TokenPayload struct {
	Email     string
	FirstName string
	LastName  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type AuthService interface {
	// LoginWithGoogle returns access_token, refresh_token.
	LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error)
	// RefreshAccessToken returns a new access_token and the refresh_token in use.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	// VerifyAccessToken returns the caller's user id and role.
	VerifyAccessToken(tokenString string) (int64, domain.Role, error)
}
