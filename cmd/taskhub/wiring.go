package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/core/ports"
	"github.com/99minutos/taskhub/internal/core/security"
	"github.com/99minutos/taskhub/internal/infrastructure/config"
	mongostore "github.com/99minutos/taskhub/internal/infrastructure/db/mongo"
	rediscache "github.com/99minutos/taskhub/internal/infrastructure/db/redis"
	"github.com/99minutos/taskhub/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/taskhub/internal/infrastructure/http/handlers"
	"github.com/99minutos/taskhub/internal/infrastructure/queue"
	"github.com/99minutos/taskhub/pkg/logger"
)

// store bundles the repositories of the configured driver.
type store struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	check  handlers.Check
	setup  func(ctx context.Context) ([]string, error)
	status func(ctx context.Context) ([]sqlstore.MigrationStatus, error)
	close  func()
}

func initLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.Telemetry.ServiceName,
	})
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		sc := sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: cfg.Postgres.URL}
		if cfg.Store.Driver == config.DriverSQLite {
			sc = sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: cfg.SQLite.Path}
		}
		db, err := sqlstore.Open(ctx, sc)
		if err != nil {
			return nil, err
		}
		migrator := sqlstore.NewMigrator(db)
		log.Info().Str("driver", sc.Driver).Msg("sql store connected")
		return &store{
			users:  sqlstore.NewUserRepository(db),
			tasks:  sqlstore.NewTaskRepository(db),
			check:  handlers.SQLCheck(db),
			setup:  migrator.Up,
			status: migrator.Status,
			close:  func() { _ = db.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			AppName:     cfg.Telemetry.ServiceName,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
			Timeout:     cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(db)
		tasks := mongostore.NewTaskRepository(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store connected")
		return &store{
			users: users,
			tasks: tasks,
			check: handlers.MongoCheck(db),
			setup: func(ctx context.Context) ([]string, error) {
				if err := users.EnsureIndexes(ctx); err != nil {
					return nil, fmt.Errorf("user indexes: %w", err)
				}
				if err := tasks.EnsureIndexes(ctx); err != nil {
					return nil, fmt.Errorf("task indexes: %w", err)
				}
				return []string{"users indexes", "tasks indexes"}, nil
			},
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// openCache connects the optional Redis actor cache. A nil client means the
// cache is disabled.
func openCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, ports.UserCache, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil, nil
	}
	client, err := rediscache.Connect(ctx, rediscache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis user cache enabled")
	return client, rediscache.NewUserCache(client, cfg.Redis.CacheTTL, log), nil
}

// startHashPool runs the bcrypt worker pool until the returned stop func is
// called. The pool keeps ctx values but not its cancellation, so callers
// decide when hashing ends.
func startHashPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*queue.HashPool, context.CancelFunc) {
	poolCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	pool := queue.NewHashPool(cfg.Auth.HashWorkers, security.NewBcryptHasher(cfg.Auth.BcryptCost), log)
	pool.Start(poolCtx)
	return pool, stop
}
