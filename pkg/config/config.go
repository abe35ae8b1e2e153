package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers for the trending and bookmark repositories.
const (
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	StoreDriver  string `envconfig:"STORE_DRIVER" default:"postgres"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region         string `envconfig:"DDB_REGION"`
		Endpoint       string `envconfig:"DDB_ENDPOINT"`
		AccessKey      string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey      string `envconfig:"DDB_SECRET_KEY"`
		SessionToken   string `envconfig:"DDB_SESSION_TOKEN"`
		TrendingTable  string `envconfig:"DDB_TRENDING_TABLE" default:"trending_movies"`
		BookmarksTable string `envconfig:"DDB_BOOKMARKS_TABLE" default:"bookmarks"`
	}
	Auth struct {
		JWTSecret          string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL           time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"15m"`
		RefreshTTL         time.Duration `envconfig:"AUTH_REFRESH_TTL" default:"720h"`
		GoogleClientID     string        `envconfig:"AUTH_GOOGLE_CLIENT_ID"`
		GoogleClientSecret string        `envconfig:"AUTH_GOOGLE_CLIENT_SECRET"`
		GoogleRedirectURL  string        `envconfig:"AUTH_GOOGLE_REDIRECT_URL"`
	}
	TMDB struct {
		APIKey  string        `envconfig:"TMDB_API_KEY"`
		BaseURL string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		Timeout time.Duration `envconfig:"TMDB_TIMEOUT" default:"30s"`
	}
	Search struct {
		Debounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"500ms"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if cfg.StoreDriver != StorePostgres && cfg.StoreDriver != StoreDynamoDB {
		return nil, fmt.Errorf("load config error: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}
