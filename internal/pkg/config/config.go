// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server configures cmd/server.
type Server struct {
	AppEnv    string `env:"APP_ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`

	SpannerDatabase string `env:"SPANNER_DATABASE" envDefault:"projects/test-project/instances/emulator-instance/databases/test-db"`

	// JWTSecret verifies bearer tokens minted by the external identity provider.
	JWTSecret string `env:"AUTH_JWT_SECRET,required"`
	JWTIssuer string `env:"AUTH_JWT_ISSUER"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	OrderLookupConcurrency int `env:"ORDER_LOOKUP_CONCURRENCY" envDefault:"8"`

	OutboxSchedule  string `env:"OUTBOX_RELAY_SCHEDULE" envDefault:"@every 10s"`
	OutboxBatchSize int    `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Client configures cmd/shop.
type Client struct {
	LogLevel string `env:"SHOP_LOG_LEVEL" envDefault:"warn"`

	APIURL string `env:"SHOP_API_URL" envDefault:"http://localhost:8080"`
	// Token is a bearer token issued by the identity provider; needed for checkout.
	Token string `env:"SHOP_TOKEN"`
	// CartPath is the local SQLite file holding the cart ledger.
	CartPath string `env:"SHOP_CART_PATH" envDefault:"storefront-cart.db"`

	RequestTimeout time.Duration `env:"SHOP_REQUEST_TIMEOUT" envDefault:"15s"`
}

// Seed configures cmd/seed.
type Seed struct {
	SpannerDatabase string `env:"SPANNER_DATABASE,required"`
	CatalogFile     string `env:"SEED_CATALOG_FILE" envDefault:"seed/catalog.yaml"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

// Migrate configures cmd/migrate.
type Migrate struct {
	SpannerDatabase string        `env:"SPANNER_DATABASE,required"`
	Timeout         time.Duration `env:"MIGRATE_TIMEOUT" envDefault:"2m"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadDotEnv reads an optional .env file; a missing file is not an error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads .env (if any) and then the environment.
func LoadServer() (Server, error) {
	LoadDotEnv()
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// LoadClient reads .env (if any) and then the environment.
func LoadClient() (Client, error) {
	LoadDotEnv()
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// LoadSeed reads .env (if any) and then the environment.
func LoadSeed() (Seed, error) {
	LoadDotEnv()
	var cfg Seed
	if err := ParseEnv(&cfg); err != nil {
		return Seed{}, err
	}
	return cfg, nil
}

// LoadMigrate reads .env (if any) and then the environment.
func LoadMigrate() (Migrate, error) {
	LoadDotEnv()
	var cfg Migrate
	if err := ParseEnv(&cfg); err != nil {
		return Migrate{}, err
	}
	return cfg, nil
}
