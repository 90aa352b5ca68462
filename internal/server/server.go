// Package server owns the storefront process lifecycle: config, cache,
// background schedule, listen and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/internal/kernel"
	"github.com/coconina/storefront/pkg/cache"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/schedule"
)

const shutdownTimeout = 10 * time.Second

// Start serves the storefront until SIGINT or SIGTERM, then drains
// in-flight requests and background tasks.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

// Run is Start without the signal handling; it returns once ctx is done and
// the server has shut down.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.AttachMongo(ctx, uri, config.LogMongoDatabase(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		}
		defer closeSink()
	}

	store := cache.Connect(ctx)
	gw := services.NewGatewayFromConfig(store)

	k, err := kernel.NewHTTPKernel(gw, controllers.LinkConfigFromEnv(), store.Driver())
	if err != nil {
		return err
	}

	sched := Schedule(gw, k)
	bg, cancelBG := context.WithCancel(ctx)
	defer cancelBG()
	sched.Start(bg)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      config.APITimeout() + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		mode := "fixtures"
		if gw.IsConfigured() {
			mode = "remote"
		}
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv(), "mode", mode, "cache", store.Driver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			cancelBG()
			sched.Wait()
			return fmt.Errorf("server: listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("server: shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	cancelBG()
	sched.Wait()
	if err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server: stopped")
	return nil
}

// Schedule registers the background tasks: cache re-warming when a remote
// API is configured, and the rate limiter sweep.
func Schedule(gw *services.Gateway, k *kernel.HTTPKernel) *schedule.Scheduler {
	s := schedule.New()

	if gw.IsConfigured() {
		s.Every(config.Revalidate()).Name("cache.warm").WithoutOverlapping().Immediately().Run(func(ctx context.Context) {
			if _, err := gw.Warm(ctx); err != nil {
				logger.Warn("cache.warm: failed", "error", err)
			}
		})
	}

	s.Every(time.Minute).Name("ratelimit.sweep").Run(func(context.Context) {
		k.Limiter.Sweep()
	})

	return s
}
