package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	SQLite    SQLiteConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,   default=30m"`
	BcryptCost  int           `env:"BCRYPT_COST, default=10"`
	HashWorkers int           `env:"HASH_WORKERS, default=0"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=postgres"`
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/taskhub?sslmode=disable"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=taskhub.db"`
}

type MongoConfig struct {
	URI         string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database    string        `env:"MONGO_DB,  default=taskhub"`
	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=0"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
}

// RedisConfig configures the optional actor cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=5s"`
	CacheTTL time.Duration `env:"USER_CACHE_TTL,  default=5m"`
}

type TelemetryConfig struct {
	ServiceName  string `env:"OTEL_SERVICE_NAME,           default=taskhub"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Stdout       bool   `env:"TRACING_STDOUT, default=false"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("config: unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
