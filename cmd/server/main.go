// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

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

	"github.com/tomtom215/commutepulse/internal/api"
	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/dashboard"
	"github.com/tomtom215/commutepulse/internal/database"
	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
	"github.com/tomtom215/commutepulse/internal/secrets"
	"github.com/tomtom215/commutepulse/internal/supervisor"
	"github.com/tomtom215/commutepulse/internal/supervisor/services"
	"github.com/tomtom215/commutepulse/internal/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout      = 30 * time.Second
	catalogCheckInterval = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Version: version,
		Output:  os.Stderr,
	})

	logging.Info().
		Str("source", cfg.Database.Source).
		Str("catalog", cfg.Database.Catalog).
		Str("alias", cfg.Database.Alias).
		Str("environment", cfg.Server.Environment).
		Msg("Starting CommutePulse")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := resolveToken(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to resolve MotherDuck credential")
	}

	provider := database.NewProvider(database.Options{
		Database: cfg.Database,
		Tables:   cfg.Tables,
		Breaker:  cfg.Breaker,
		Token:    token.Value,
	})
	db, err := provider.DB()
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.Database.Source).Msg("Failed to attach catalog")
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	engine, err := dashboard.NewTemplateEngine()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse dashboard templates")
	}

	handler := api.NewHandler(api.HandlerOptions{
		Dashboard: dashboard.NewService(db, cfg.Dashboard),
		Engine:    engine,
		DB:        db,
		Defaults:  validation.DefaultsFromConfig(cfg.Dashboard),
		Version:   version,
	})

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	metrics.SetAppInfo(version)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewCatalogMonitor(db, catalogCheckInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logging.Info().Msg("CommutePulse stopped")
}

// resolveToken returns the MotherDuck credential. The local source needs none.
func resolveToken(ctx context.Context, cfg *config.Config) (secrets.Token, error) {
	if !cfg.Database.IsMotherDuck() {
		return secrets.Token{}, nil
	}
	token, err := secrets.ResolveToken(ctx, cfg.Credentials, secrets.OpenGCPStore)
	if err != nil {
		return secrets.Token{}, err
	}
	logging.AddSecret(token.Value)
	logging.Info().
		Str("credential_source", token.Source).
		Str("token", token.String()).
		Msg("MotherDuck credential resolved")
	return token, nil
}
