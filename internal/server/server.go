// Package server boots the HTTP process: config, database, cache,
// routes, middleware, then a graceful listen loop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostelmess/hostelmess/app/routes"
	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/config"
	"github.com/hostelmess/hostelmess/pkg/cache"
	"github.com/hostelmess/hostelmess/pkg/database"
	"github.com/hostelmess/hostelmess/pkg/logger"
	"github.com/hostelmess/hostelmess/pkg/metrics"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/reqid"
	"github.com/hostelmess/hostelmess/pkg/router"
	"github.com/hostelmess/hostelmess/pkg/schedule"
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// The cache is optional: without Redis the storefront just hits
	// the database every time.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	routes.RegisterAPI(r, database.DB)

	// The planning board is today-scoped, so rows from past days are
	// invisible to every query. Sweep them out shortly after midnight.
	plans := services.NewMealPlanService(database.DB)
	schedule.Cron("5 0 * * *").Name("purge-stale-meal-plans").WithoutOverlapping().Run(func() {
		if n, err := plans.PurgeStale(); err != nil {
			logger.Error("purge stale meal plans", "error", err)
		} else if n > 0 {
			logger.Info("purged stale meal plans", "deleted", n)
		}
	})

	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	schedule.Start(schedCtx)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
