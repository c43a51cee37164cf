// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

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

	"github.com/spf13/cobra"

	"github.com/tomtom215/mbtisaju/internal/analysis"
	"github.com/tomtom215/mbtisaju/internal/api"
	"github.com/tomtom215/mbtisaju/internal/auth"
	"github.com/tomtom215/mbtisaju/internal/calendar"
	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/notify"
	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/saju"
	"github.com/tomtom215/mbtisaju/internal/supervisor"
	"github.com/tomtom215/mbtisaju/internal/supervisor/services"
)

const (
	cacheSweepInterval = time.Minute
	storeGCInterval    = 10 * time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

// app holds the wired components and the resources to release on exit.
type app struct {
	cfg      *config.Config
	db       *database.DB
	analyses *analysis.Service
	payments *payment.Service
	idem     *payment.IdempotencyStore
	handler  http.Handler
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(loggingConfig(cfg))
	logging.Info().Str("version", version).Str("config", cfg.String()).Msg("Starting MBTI Saju")

	a, err := newApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}

// loggingConfig maps the logging section onto logging.Config. Timestamps
// are always on.
func loggingConfig(cfg *config.Config) logging.Config {
	return logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	}
}

// newApp opens the stores and assembles the HTTP handler.
func newApp(cfg *config.Config) (*app, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	a := &app{cfg: cfg, db: db}

	analyzer := saju.NewAnalyzer(calendar.NewLunarOracle())
	a.analyses = analysis.NewService(analyzer, db, &cfg.Cache)

	if cfg.Payment.Enabled {
		if err := a.initPayments(); err != nil {
			a.close()
			return nil, err
		}
	} else {
		logging.Info().Msg("Payments disabled (PAYMENT_ENABLED=false)")
	}

	authMW := auth.NewMiddleware(nil)
	if cfg.AdminEnabled() {
		jwt, err := auth.NewJWTManager(&cfg.Security)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("create JWT manager: %w", err)
		}
		authMW = auth.NewMiddleware(jwt)
		logging.Info().Msg("Admin statistics enabled")
	} else {
		logging.Info().Msg("Admin statistics disabled (JWT_SECRET not set)")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Analyses: a.analyses,
		Payments: a.payments,
		Stats:    db,
		DB:       db,
		Version:  version,
	})
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	a.handler = api.NewRouter(handler, authMW, chiMW).SetupChi()
	return a, nil
}

func (a *app) initPayments() error {
	p := a.cfg.Payment

	idem, err := payment.OpenIdempotencyStore(p.IdempotencyPath, p.IdempotencyTTL)
	if err != nil {
		return err
	}
	a.idem = idem

	gateway := payment.NewBreakerGateway(
		payment.NewHTTPGateway(p.GatewayURL, p.SecretKey, p.Timeout),
		payment.BreakerSettings{ConsecutiveFailures: p.BreakerFailures, OpenTimeout: p.BreakerTimeout},
	)
	a.payments = payment.NewService(a.db, gateway, idem, notify.New(&a.cfg.Notify))

	logging.Info().
		Str("gateway", p.GatewayURL).
		Bool("persistent_idempotency", p.IdempotencyPath != "").
		Bool("notify", a.cfg.Notify.Enabled).
		Msg("Payments enabled")
	return nil
}

// run serves until ctx is canceled.
func (a *app) run(ctx context.Context) error {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(a.cfg))
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	server := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, a.cfg.Server.ShutdownTimeout))

	if a.cfg.Cache.Enabled {
		tree.AddMaintenanceService(services.NewCacheSweeper(a.analyses, cacheSweepInterval))
	}
	if a.idem != nil && a.cfg.Payment.IdempotencyPath != "" {
		tree.AddMaintenanceService(services.NewStoreGC(a.idem, storeGCInterval))
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var runErr error
	if err := <-errCh; err != nil && ctx.Err() == nil && !errors.Is(err, context.Canceled) {
		logging.Err(err).Msg("Supervisor tree error")
		runErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
	return runErr
}

// close flushes notifications and releases the stores. Safe on a
// partially built app.
func (a *app) close() {
	if a.payments != nil {
		a.payments.Wait()
	}
	if a.idem != nil {
		if err := a.idem.Close(); err != nil {
			logging.Err(err).Msg("Error closing idempotency store")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Err(err).Msg("Error closing database")
		}
	}
}
