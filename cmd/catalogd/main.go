package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/ruchirachamara/assessment/docs"
	"github.com/ruchirachamara/assessment/internal/catalog"
	"github.com/ruchirachamara/assessment/internal/config"
	"github.com/ruchirachamara/assessment/internal/seed"
	"github.com/ruchirachamara/assessment/internal/server"
	"github.com/ruchirachamara/assessment/internal/stats"
	"github.com/ruchirachamara/assessment/internal/version"
	"github.com/ruchirachamara/assessment/internal/watch"
)

// @title			Catalog API
// @version		1.0
// @description	Item catalog with search, pagination, and cached stats.
// @BasePath		/api
func main() {
	configPath := flag.String("config", "", "path to configuration file")
	seedData := flag.Bool("seed", false, "write the starter collection if the data file is absent")
	dev := flag.Bool("dev", false, "use development logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	newLogger := zap.NewProduction
	if *dev {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("catalogd starting", zap.String("version", version.Short()))

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	dataFile := cfg.GetString("data.file")
	store := catalog.NewStore(dataFile, logger)

	if *seedData {
		items, err := seed.NewCollection().Items()
		if err != nil {
			logger.Fatal("failed to load starter collection", zap.Error(err))
		}
		seeded, err := store.Seed(items)
		if err != nil {
			logger.Fatal("failed to seed collection", zap.Error(err))
		}
		if seeded {
			logger.Info("seeded starter collection", zap.String("file", dataFile))
		} else {
			logger.Info("collection already exists, not seeding", zap.String("file", dataFile))
		}
	}

	statsSvc := stats.New(store, cfg.GetDuration("stats.cache_ttl"), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watch the data file so out-of-band edits invalidate the stats cache.
	// Without the watcher the TTL and modtime checks still keep stats honest.
	var watcher *watch.Watcher
	if cfg.GetBool("watch.enabled") {
		watcher, err = watch.New(dataFile, logger)
		if err != nil {
			logger.Warn("file watch unavailable", zap.Error(err))
		} else {
			go statsSvc.Run(ctx, watcher.Events())
		}
	}

	// Assemble the middleware chain
	middleware := []server.Middleware{
		server.RequestID(),
		server.Logging(logger),
		server.Metrics(),
	}
	if rps := cfg.GetFloat64("server.rate_limit"); rps > 0 {
		burst := cfg.GetInt("server.rate_burst")
		if burst < 1 {
			burst = int(rps)
		}
		if burst < 1 {
			burst = 1
		}
		middleware = append(middleware, server.RateLimit(rps, burst, logger))
	}

	// Create and start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.GetString("server.host"), cfg.GetInt("server.port"))
	srv := server.New(addr, logger, middleware...)
	srv.Register(
		catalog.NewHandler(store, logger),
		stats.NewHandler(statsSvc, logger),
	)
	srv.Handle("/metrics", promhttp.Handler())
	srv.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("catalogd ready",
		zap.String("addr", addr),
		zap.String("data_file", dataFile))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()
	if watcher != nil {
		watcher.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("catalogd stopped")
}
