package jwt_test

import (
	"testing"
	"time"

	"gomovies/auth"
	"gomovies/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var claims = auth.Claims{UserID: "u-1", SessionID: "s-1", Email: "alice@example.com"}

func TestJWTProvider(t *testing.T) {
	p := jwt.NewJWTProvider("secret", time.Minute, time.Hour)

	t.Run("should round trip access token", func(t *testing.T) {
		token, err := p.GenerateAccessToken(claims)
		require.NoError(t, err)

		parsed, err := p.ParseAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, claims, parsed)
	})

	t.Run("should round trip refresh token", func(t *testing.T) {
		token, err := p.GenerateRefreshToken(claims)
		require.NoError(t, err)

		parsed, err := p.ParseRefreshToken(token)

		require.NoError(t, err)
		assert.Equal(t, claims, parsed)
	})

	t.Run("should not accept refresh token as access token", func(t *testing.T) {
		token, err := p.GenerateRefreshToken(claims)
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)

		assert.ErrorIs(t, err, jwt.ErrInvalidTokenType)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		token, err := jwt.NewJWTProvider("other", time.Minute, time.Hour).GenerateAccessToken(claims)
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)

		assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		token, err := jwt.NewJWTProvider("secret", -time.Minute, time.Hour).GenerateAccessToken(claims)
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)

		assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
	})

	t.Run("should reject token without session", func(t *testing.T) {
		token, err := p.GenerateAccessToken(auth.Claims{UserID: "u-1"})
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)

		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
	})

	t.Run("should reject unsigned token", func(t *testing.T) {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.SessionClaims{Type: "access"}).
			SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)

		assert.Error(t, err)
	})
}
