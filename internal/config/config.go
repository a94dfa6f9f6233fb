package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/currency"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// StoreConfig selects and tunes the key-value backend. The API server and
// bankctl share it.
type StoreConfig struct {
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	DatabaseURL  string `env:"DATABASE_URL"`

	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"securebank"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	StoreConfig

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	InitialBalance decimal.Decimal `env:"INITIAL_BALANCE" envDefault:"0"`
	Currency       string          `env:"CURRENCY" envDefault:"INR"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return parse()
}

// LoadStore reads only the store settings, for tools that never serve HTTP.
func LoadStore() (*StoreConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config.LoadStore: %w", err)
	}
	cfg, err := env.ParseAs[StoreConfig]()
	if err != nil {
		return nil, fmt.Errorf("config.LoadStore: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.LoadStore: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c StoreConfig) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func (c Config) validate() error {
	if err := c.StoreConfig.validate(); err != nil {
		return err
	}
	if c.InitialBalance.IsNegative() {
		return errors.New("INITIAL_BALANCE must not be negative")
	}
	if !currency.Valid(c.Currency) {
		return fmt.Errorf("unknown CURRENCY %q", c.Currency)
	}
	return nil
}
