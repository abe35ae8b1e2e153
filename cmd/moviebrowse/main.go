package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gomovies/auth"
	"gomovies/bookmark"
	"gomovies/dynamodb"
	"gomovies/movie"
	"gomovies/pkg/config"
	"gomovies/pkg/jwt"
	"gomovies/pkg/sentry"
	"gomovies/postgres"
	"gomovies/search"
	"gomovies/tab"
	"gomovies/tmdb"
	"gomovies/trending"
	"gomovies/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

func main() {
	var token string
	flag.StringVar(&token, "token", "", "Access token of a signed-in session (optional)")
	flag.Parse()

	// Logs go to stderr so they do not mix with the screen.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("cannot init sentry", "error", err)
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
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}
	userRepo := postgres.NewUserRepository(db)

	trendingRepo, bookmarkRepo, err := stores(ctx, cfg, db)
	if err != nil {
		slog.Error("cannot open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	var (
		authService *auth.Usecase
		sessionID   string
	)
	if token != "" {
		authService = auth.NewUsecase(
			userRepo,
			postgres.NewSessionRepository(db),
			jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL),
			nil,
			cfg.Auth.RefreshTTL,
		)
		u, claims, err := authService.Authenticate(ctx, token)
		if err != nil {
			slog.Error("cannot sign in", "error", err)
			os.Exit(1)
		}
		ctx = user.NewContext(ctx, u)
		sessionID = claims.SessionID
	}

	catalog := movie.NewUsecase(tmdb.NewClient(tmdb.Options{
		BaseURL: cfg.TMDB.BaseURL,
		APIKey:  cfg.TMDB.APIKey,
		Timeout: cfg.TMDB.Timeout,
	}))
	trendingService := trending.NewUsecase(trendingRepo, logger)

	pipeline := search.New(ctx, catalog, trendingService,
		search.WithDebounce(cfg.Search.Debounce),
		search.WithLogger(logger),
	)
	defer pipeline.Close()

	b := newBrowser(ctx, os.Stdout, pipeline, catalog,
		bookmark.NewUsecase(bookmarkRepo, logger),
		user.NewUsecase(userRepo),
	)
	if authService != nil {
		b.withSession(authService, sessionID)
	}
	b.print(tab.Bar(tab.Home))
	b.print(helpText)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || b.handle(line) {
				return
			}
		}
	}
}

func stores(ctx context.Context, cfg *config.Config, db *gorm.DB) (trending.Repository, bookmark.Repository, error) {
	if cfg.StoreDriver != config.StoreDynamoDB {
		return postgres.NewTrendingRepository(db), postgres.NewBookmarkRepository(db), nil
	}

	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return nil, nil, err
	}
	return dynamodb.NewTrendingRepository(client, cfg.DynamoDB.TrendingTable),
		dynamodb.NewBookmarkRepository(client, cfg.DynamoDB.BookmarksTable), nil
}
