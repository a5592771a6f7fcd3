package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"user:password@tcp(localhost:3306)/auctions?charset=utf8mb4&parseTime=True&loc=UTC"`
	ResetDB     bool   `env:"RESET_DB" envDefault:"false"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"session"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`

	// Empty AMQPURL disables event publishing.
	AMQPURL        string `env:"AMQP_URL"`
	EventsExchange string `env:"EVENTS_EXCHANGE" envDefault:"auctions"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	PageSize    int `env:"PAGE_SIZE" envDefault:"6"`
	PageRadius  int `env:"PAGE_RADIUS" envDefault:"2"`
	GridColumns int `env:"GRID_COLUMNS" envDefault:"4"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from the environment, reading a local .env file first when one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.PageSize < 1 {
		cfg.PageSize = 6
	}
	if cfg.PageRadius < 0 {
		cfg.PageRadius = 0
	}
	if cfg.GridColumns < 1 {
		cfg.GridColumns = 4
	}
	return cfg, nil
}
