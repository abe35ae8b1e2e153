package jwt

import (
	"errors"
	"time"

	"gomovies/auth"

	"github.com/golang-jwt/jwt/v5"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrInvalidTokenType        = errors.New("invalid token type")
	ErrInvalidClaims           = errors.New("invalid token claims")
)

// SessionClaims is the registered claim set plus the session binding.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(c auth.Claims) (string, error) {
	return p.sign(c, typeAccess, p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(c auth.Claims) (string, error) {
	return p.sign(c, typeRefresh, p.RefreshTTL)
}

func (p *JWTProvider) ParseAccessToken(token string) (auth.Claims, error) {
	return p.parse(token, typeAccess)
}

func (p *JWTProvider) ParseRefreshToken(token string) (auth.Claims, error) {
	return p.parse(token, typeRefresh)
}

// Keyfunc verifies the signing method before handing out the secret.
func (p *JWTProvider) Keyfunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningMethod
	}
	return []byte(p.Secret), nil
}

func (p *JWTProvider) sign(c auth.Claims, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: c.SessionID,
		Email:     c.Email,
		Type:      typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

func (p *JWTProvider) parse(token, typ string) (auth.Claims, error) {
	var claims SessionClaims
	if _, err := jwt.ParseWithClaims(token, &claims, p.Keyfunc, jwt.WithExpirationRequired()); err != nil {
		return auth.Claims{}, err
	}

	if claims.Type != typ {
		return auth.Claims{}, ErrInvalidTokenType
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return auth.Claims{}, ErrInvalidClaims
	}

	return auth.Claims{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Email:     claims.Email,
	}, nil
}
