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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"koita-chat-api/internal/config"
	"koita-chat-api/internal/infrastructure/crontab"
	"koita-chat-api/internal/infrastructure/metrics"
	"koita-chat-api/internal/infrastructure/observability"
	"koita-chat-api/internal/interfaces/httpserver"
)

// @title Koita Chat API
// @version 1.0
// @description Backend for the Mistral AI chat web client: accounts, streamed chat, saved conversations and voice.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
type Application struct {
	cfg        *config.Config
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(cfg *config.Config, httpServer *httpserver.HTTPServer, cron *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		cfg:        cfg,
		httpServer: httpServer,
		crontab:    cron,
		log:        log,
	}
}

// Start runs the API, the metrics listener and the scheduled jobs until ctx is done or one of them fails.
func (a *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	eg.Go(func() error {
		return a.runMetrics(ctx)
	})
	eg.Go(func() error {
		return a.crontab.Run(ctx)
	})

	return eg.Wait()
}

func (a *Application) runMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Addr:              a.cfg.MetricsAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	app, cleanup, err := CreateApplication(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build application")
	}
	defer cleanup()

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
