package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/api/handler"
	"github.com/usermgmt/user-service/internal/core/ports"
	"github.com/usermgmt/user-service/internal/infrastructure/db/mongo"
	"github.com/usermgmt/user-service/internal/infrastructure/db/postgres"
	"github.com/usermgmt/user-service/internal/infrastructure/db/redis"
	"github.com/usermgmt/user-service/internal/pkg/config"
)

// stores bundles the repositories for the configured driver together with
// their readiness probes and a cleanup function.
type stores struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	guard  ports.RegistrationGuard
	probes map[string]handler.Pinger
	close  func()
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	s := &stores{probes: map[string]handler.Pinger{}}
	var closers []func()
	s.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
			MinPoolSize: cfg.Mongo.MinPoolSize,
			Timeout:     cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		if err := mongo.EnsureSchema(ctx, db); err != nil {
			s.close()
			return nil, fmt.Errorf("mongo schema: %w", err)
		}
		s.users = mongo.NewUserRepository(db, log)
		s.roles = mongo.NewRoleRepository(db)
		s.probes["mongodb"] = handler.PingFunc(func(ctx context.Context) error { return mongo.Ping(ctx, client) })
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	default:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := postgres.Migrate(db); err != nil {
			s.close()
			return nil, err
		}
		s.users = postgres.NewUserRepository(db, log)
		s.roles = postgres.NewRoleRepository(db)
		s.probes["postgres"] = handler.PingFunc(db.PingContext)
		log.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Database).Msg("connected to postgres")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			s.close()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		s.guard = redis.NewRegistrationGuard(rdb)
		s.probes["redis"] = handler.PingFunc(func(ctx context.Context) error { return redis.Ping(ctx, rdb) })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("registration guard enabled")
	}

	return s, nil
}
