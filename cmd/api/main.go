// @title                       User Service API
// @version                     1.0
// @description                 Registration, login, bearer-token authentication and permission-gated user and role management.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/docs"
	"github.com/usermgmt/user-service/internal/api"
	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/service"
	"github.com/usermgmt/user-service/internal/infrastructure/security"
	"github.com/usermgmt/user-service/internal/pkg/config"
	"github.com/usermgmt/user-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("service stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer st.close()

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := security.NewJWTCodec(cfg.JWTSecret)

	authService := service.NewAuthService(st.users, hasher, tokens, st.guard, log, service.WithTokenTTL(cfg.TokenTTL))
	identity := service.NewIdentityResolver(tokens, st.users)
	perms := service.NewPermissionEvaluator(st.users, log)

	if cfg.Admin.Enabled() {
		created, err := service.EnsureAdmin(ctx, authService, domain.Registration{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Email:    cfg.Admin.Email,
			FullName: cfg.Admin.FullName,
		})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		log.Info().Str("username", cfg.Admin.Username).Bool("created", created).Msg("admin account ensured")
	}

	docs.SwaggerInfo.BasePath = cfg.APIPrefix

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Identity:  identity,
		Users:     service.NewUserService(st.users, perms),
		Roles:     service.NewRoleService(st.roles, perms, log),
		Probes:    st.probes,
		Log:       log,
		APIPrefix: cfg.APIPrefix,
		Swagger:   true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server crashed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = e.Close()
	}

	log.Info().Msg("shutdown complete")
	return nil
}
