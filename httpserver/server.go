package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gomovies/auth"
	"gomovies/bookmark"
	"gomovies/errs"
	"gomovies/movie"
	"gomovies/pkg/config"
	"gomovies/pkg/jwt"
	"gomovies/pkg/sentry"
	"gomovies/tmdb"
	"gomovies/trending"
	"gomovies/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// claimsKey is where the bearer middleware stores the parsed auth.Claims.
const claimsKey = "user"

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// Tokens parses bearer access tokens on identity-aware routes.
	Tokens auth.TokenProvider

	// HealthChecks run on every /healthcheck, keyed by store name.
	HealthChecks map[string]HealthCheck

	MovieService    movie.Service
	TrendingService trending.Service
	BookmarkService bookmark.Service
	UserService     user.Service
	AuthService     auth.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: allowOrigins(cfg.AllowOrigins),
		Tokens:       jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL),
	}

	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterPublicRoutes(api)
	s.RegisterIdentityRoutes(api, s.identityMiddlewares()...)
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

// allowOrigins splits a comma separated origin list. An empty list allows any origin.
func allowOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterMovieRoutes(g)
	s.RegisterTrendingRoutes(g)
	s.RegisterAuthRoutes(g)
}

// RegisterIdentityRoutes mounts the routes that behave differently for
// signed-in users. A bearer token is optional on all of them.
func (s *Server) RegisterIdentityRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	s.RegisterBookmarkRoutes(g.Group("/bookmarks", m...))
	s.RegisterUserRoutes(g, m...)
	g.POST("/auth/signout", s.handleSignOut, m...)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) identityMiddlewares() []echo.MiddlewareFunc {
	bearer := echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return s.Tokens.ParseAccessToken(token)
		},
		// A missing header means an anonymous caller; a bad token is rejected.
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return nil
			}
			return auth.ErrInvalidAccessToken
		},
	})
	return []echo.MiddlewareFunc{bearer, s.identify}
}

// identify resolves bearer claims to a user and stores it in the request
// context for the usecases.
func (s *Server) identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsKey).(auth.Claims)
		if !ok {
			return next(c)
		}
		if s.AuthService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
		}

		ctx := c.Request().Context()
		u, err := s.AuthService.Identify(ctx, claims)
		if err != nil {
			return err
		}
		c.SetRequest(c.Request().WithContext(user.NewContext(ctx, u)))
		return next(c)
	}
}

func claimsFrom(c echo.Context) (auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(auth.Claims)
	return claims, ok
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	var fe *tmdb.FetchError
	switch {
	case errors.As(err, &he):
		code = he.Code
		message = fmt.Sprint(he.Message)
	case errors.As(err, &fe):
		code = http.StatusBadGateway
		message = fe.Error()
	default:
		// Map application error codes to HTTP status codes
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed",
			"op", "httpserver.customHTTPErrorHandler",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", code,
			"error", err,
		)
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message, "", err); err != nil {
			c.Logger().Error(err)
		}
	}
}
