package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "stockroom"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	State    StateConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.State.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKROOM_APP_ENV" default:"development"`
	Port         string `envconfig:"STOCKROOM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOCKROOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKROOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StateConfig selects the backend holding the persisted session and cart
// slots. The sqlite driver keeps a single local profile on disk; postgres
// and redis are available for shared deployments.
type StateConfig struct {
	Driver string `envconfig:"STOCKROOM_STATE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STOCKROOM_STATE_DSN" default:"stockroom.db"`
}

const (
	StateDriverSQLite   = "sqlite"
	StateDriverPostgres = "postgres"
	StateDriverRedis    = "redis"
	StateDriverMemory   = "memory"
)

func (s StateConfig) validate() error {
	switch s.Driver {
	case StateDriverSQLite, StateDriverPostgres, StateDriverRedis, StateDriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown state driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKROOM_REDIS_URL"`
	Address      string        `envconfig:"STOCKROOM_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKROOM_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKROOM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKROOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKROOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKROOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKROOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKROOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOCKROOM_JWT_SECRET" default:"dev-only-secret"`
	Issuer            string `envconfig:"STOCKROOM_JWT_ISSUER" default:"stockroom"`
	ExpirationMinutes int    `envconfig:"STOCKROOM_JWT_EXPIRATION_MINUTES" default:"720"`
}

// CheckoutConfig carries the simulated network latency applied before a
// login or order placement completes.
type CheckoutConfig struct {
	SimulatedDelay time.Duration `envconfig:"STOCKROOM_SIMULATED_DELAY" default:"1s"`
}
