package auth

import (
	"context"
)

type AuthService interface {
	// Login authenticates an HR account with email and password
	Login(ctx context.Context, req LoginRequest, session SessionInfo) (TokenResponse, error)

	// LoginWithGoogle returns the Google consent redirect URL for a state
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL string, state string, err error)

	// OAuthCallbackGoogle exchanges the authorization code and logs the
	// linked HR account in
	OAuthCallbackGoogle(ctx context.Context, code string, session SessionInfo) (TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new access token
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// SSEToken issues a short-lived token for the live events stream
	SSEToken(ctx context.Context, userID string) (SSETokenResponse, error)
}
