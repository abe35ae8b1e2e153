package auth

import (
	"time"

	"gomovies/errs"
)

var (
	ErrInvalidAccessToken  = errs.Errorf(errs.EUNAUTHORIZED, "invalid access token")
	ErrInvalidRefreshToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid refresh token")
	ErrSessionNotFound     = errs.Errorf(errs.EUNAUTHORIZED, "session not found")
	ErrInvalidOAuthUser    = errs.Errorf(errs.EINVALID, "invalid oauth user")
	ErrInvalidOAuthState   = errs.Errorf(errs.EINVALID, "invalid oauth state")
	ErrOAuthNotConfigured  = errs.Errorf(errs.ENOTIMPLEMENTED, "oauth provider not configured")
)

// Session is a signed-in device. Signing out deletes it, which invalidates
// every token issued for it.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Claims identify the user and session a token was issued for.
type Claims struct {
	UserID    string
	SessionID string
	Email     string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OAuthUser is the profile returned by an identity provider.
type OAuthUser struct {
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}
