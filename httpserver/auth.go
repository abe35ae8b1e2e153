package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"gomovies/auth"
	"gomovies/errs"
	"gomovies/user"

	"github.com/labstack/echo/v4"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 5 * time.Minute
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/refresh", s.handleRefresh)
	g.GET("/auth/google/login", s.handleGoogleLogin)
	g.GET("/auth/google/callback", s.handleGoogleCallback)
}

// handleGoogleLogin godoc
// @Summary Google OAuth Login
// @Description Get Google OAuth2 authorization URL
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/auth/google/login [get]
func (s *Server) handleGoogleLogin(c echo.Context) error {
	if s.AuthService == nil {
		return auth.ErrOAuthNotConfigured
	}

	state, err := generateOAuthState(32)
	if err != nil {
		return err
	}

	authURL, err := s.AuthService.GoogleAuthURL(state)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(oauthStateTTL.Seconds()),
	})

	return writeSuccess(c, http.StatusOK, map[string]string{
		"authUrl": authURL,
	})
}

// handleGoogleCallback godoc
// @Summary Google OAuth Callback
// @Description Exchange Google OAuth2 code for session tokens
// @Tags auth
// @Produce json
// @Param code query string true "OAuth code"
// @Param state query string true "OAuth state"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/auth/google/callback [get]
func (s *Server) handleGoogleCallback(c echo.Context) error {
	if s.AuthService == nil {
		return auth.ErrOAuthNotConfigured
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return errs.Errorf(errs.EINVALID, "missing code or state")
	}

	stateCookie, err := c.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state {
		return auth.ErrInvalidOAuthState
	}

	tokens, err := s.AuthService.LoginWithGoogle(c.Request().Context(), code)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})

	return writeSuccess(c, http.StatusOK, TokenResponse(tokens))
}

func generateOAuthState(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid state length")
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// handleRefresh godoc
// @Summary Refresh Access Token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh Token"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/refresh [post]
func (s *Server) handleRefresh(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, TokenResponse(tokens))
}

// handleSignOut godoc
// @Summary Sign Out
// @Description Revoke the session behind the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/signout [post]
func (s *Server) handleSignOut(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	claims, ok := claimsFrom(c)
	if !ok {
		return user.ErrNotLoggedIn
	}
	if err := s.AuthService.SignOut(c.Request().Context(), claims.SessionID); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "signed out",
	})
}
