package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomovies/auth"
	"gomovies/bookmark"
	"gomovies/dynamodb"
	"gomovies/httpserver"
	"gomovies/movie"
	"gomovies/pkg/config"
	"gomovies/pkg/jwt"
	"gomovies/pkg/oauth/google"
	"gomovies/pkg/sentry"
	"gomovies/postgres"
	"gomovies/tmdb"
	"gomovies/trending"
	"gomovies/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const (
	sessionPurgeInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	var (
		trendingRepo trending.Repository
		bookmarkRepo bookmark.Repository
	)
	checks := map[string]httpserver.HealthCheck{
		"postgres": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}
	switch cfg.StoreDriver {
	case config.StoreDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			slog.Error("Cannot create dynamodb client", "error", err)
			os.Exit(1)
		}
		trendingRepo = dynamodb.NewTrendingRepository(client, cfg.DynamoDB.TrendingTable)
		bookmarkRepo = dynamodb.NewBookmarkRepository(client, cfg.DynamoDB.BookmarksTable)
		checks["dynamodb"] = func(ctx context.Context) error {
			return dynamodb.Ping(ctx, client, cfg.DynamoDB.TrendingTable, cfg.DynamoDB.BookmarksTable)
		}
	default:
		trendingRepo = postgres.NewTrendingRepository(db)
		bookmarkRepo = postgres.NewBookmarkRepository(db)
	}

	catalog := tmdb.NewClient(tmdb.Options{
		BaseURL: cfg.TMDB.BaseURL,
		APIKey:  cfg.TMDB.APIKey,
		Timeout: cfg.TMDB.Timeout,
	})

	tokens := jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	var googleProvider auth.GoogleOAuthProvider
	if p := google.NewProvider(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL); p != nil {
		googleProvider = p
	} else {
		slog.Warn("google sign-in disabled: missing client credentials")
	}

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.HealthChecks = checks
	server.MovieService = movie.NewUsecase(catalog)
	server.TrendingService = trending.NewUsecase(trendingRepo, logger)
	server.BookmarkService = bookmark.NewUsecase(bookmarkRepo, logger)
	server.UserService = user.NewUsecase(userRepo)
	server.AuthService = auth.NewUsecase(userRepo, sessionRepo, tokens, googleProvider, cfg.Auth.RefreshTTL)

	go purgeExpiredSessions(ctx, sessionRepo)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server started!", "addr", server.Addr, "store", cfg.StoreDriver)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func purgeExpiredSessions(ctx context.Context, repo *postgres.SessionRepository) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now.UTC())
			if err != nil {
				slog.Error("cannot purge expired sessions", "op", "main.purgeExpiredSessions", "error", err)
				sentry.WithExtras(map[string]interface{}{"op": "main.purgeExpiredSessions"}).Error(err)
				continue
			}
			if n > 0 {
				slog.Info("purged expired sessions", "total", n)
			}
		}
	}
}
