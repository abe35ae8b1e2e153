package main

import (
	"context"
	"flag"
	"gomovies/dynamodb"
	"gomovies/pkg/config"
	"gomovies/postgres"
	"log/slog"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the SQL migrations")
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of applying")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot connecting to db", "error", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("cannot get db instance", "error", err)
		os.Exit(1)
	}

	var total int
	if down {
		total, err = migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Down, 1)
	} else {
		total, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	}
	if err != nil {
		logger.Error("cannot execute migration", "error", err)
		os.Exit(1)
	}
	logger.Info("applied migrations", "total", total, "down", down)

	if cfg.StoreDriver != config.StoreDynamoDB || down {
		return
	}

	ctx := context.Background()
	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		logger.Error("cannot create dynamodb client", "error", err)
		os.Exit(1)
	}
	if err := dynamodb.EnsureTables(ctx, client, cfg.DynamoDB.TrendingTable, cfg.DynamoDB.BookmarksTable); err != nil {
		logger.Error("cannot create dynamodb tables", "error", err)
		os.Exit(1)
	}
	logger.Info("dynamodb tables ready",
		"trending", cfg.DynamoDB.TrendingTable,
		"bookmarks", cfg.DynamoDB.BookmarksTable,
	)
}
