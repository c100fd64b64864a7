package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/taskhub/internal/api"
	"github.com/99minutos/taskhub/internal/core/security"
	"github.com/99minutos/taskhub/internal/core/service"
	"github.com/99minutos/taskhub/internal/infrastructure/config"
	"github.com/99minutos/taskhub/internal/infrastructure/http/handlers"
	"github.com/99minutos/taskhub/internal/infrastructure/telemetry"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := initLogger(cfg)

	shutdownTracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Stdout:      cfg.Telemetry.Stdout,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("tracer shutdown failed")
		}
	}()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	rdb, cache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	checks := []handlers.Check{st.check}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		checks = append(checks, handlers.RedisCheck(rdb))
	}

	pool, stopPool := startHashPool(ctx, cfg, log)
	defer stopPool()
	tokens := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := service.NewAuthService(st.users, pool, tokens, log)

	e := api.NewRouter(api.Dependencies{
		Auth:     auth,
		Sessions: service.NewSessionService(tokens, st.users, cache, log),
		Tasks:    service.NewTaskService(st.tasks, st.users, log),
		Users:    service.NewUserService(st.users, auth, cache, log),
		Checks:   checks,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Wrap(e, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// In-flight logins and signups still need the pool while Shutdown drains.
	err = g.Wait()
	stopPool()
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
