package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/barkwell/frontdesk/internal/api/router"
	"github.com/barkwell/frontdesk/internal/booking"
	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/internal/clients"
	appconfig "github.com/barkwell/frontdesk/internal/config"
	"github.com/barkwell/frontdesk/internal/history"
	"github.com/barkwell/frontdesk/internal/http/handlers"
	"github.com/barkwell/frontdesk/internal/observability/metrics"
	"github.com/barkwell/frontdesk/internal/square"
	"github.com/barkwell/frontdesk/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting frontdesk API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		logger.Error("invalid business timezone", "tz", cfg.BusinessTimezone, "error", err)
		os.Exit(1)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)

	squareClient := square.NewClient(cfg.SquareBaseURL, cfg.SquareAccessToken, cfg.SquareLocationID, logger,
		square.WithTimeout(cfg.SquareTimeout))
	adapter := square.NewAdapter(squareClient)

	cache := catalog.NewCache(adapter, adapter, logger, bookingMetrics)
	if cfg.CatalogWarmup {
		warmCtx, cancel := context.WithTimeout(context.Background(), cfg.SquareTimeout)
		if err := cache.Refresh(warmCtx, false); err != nil {
			logger.Warn("catalog warmup failed, first booking will refresh", "error", err)
		}
		cancel()
	}

	classifier := catalog.NewClassifier(cfg.ServiceFamilyMap(), cache, logger)
	resources := booking.NewResourceMap(cfg.ServiceResourceMap(), cfg.SpaResourceID)
	sequencer := booking.NewSequencer(cache, resources, cfg.PrimarySpaServiceID, logger)
	expander := booking.NewBoardingExpander(cache, resources, logger)
	compiler := booking.NewCompiler(cache, classifier, sequencer, expander, cfg.SquareLocationID, logger)

	var serviceOpts []booking.ServiceOption
	var historyRepo *history.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		historyRepo = history.NewRepository(pool)
		serviceOpts = append(serviceOpts, booking.WithHistory(historyRepo))
	} else {
		logger.Warn("DATABASE_URL not set, booking history disabled")
	}

	bookingService := booking.NewService(compiler, adapter, adapter, loc, bookingMetrics, logger, serviceOpts...)

	redisOpts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(redisOpts)
	roster := clients.NewRoster(rdb, adapter, cfg.RosterTTL, logger)

	var historyMarker handlers.HistoryMarker
	if historyRepo != nil {
		historyMarker = historyRepo
	}

	routerCfg := &router.Config{
		Logger:             logger,
		Bookings:           handlers.NewBookingsHandler(bookingService, historyMarker, logger),
		Catalog:            handlers.NewCatalogHandler(cache, logger),
		Roster:             handlers.NewRosterHandler(roster, logger),
		Directory:          handlers.NewDirectoryHandler(squareClient, historyRepo, logger),
		MetricsHandler:     promhttp.Handler(),
		StaffJWTSecret:     cfg.StaffJWTSecret,
		CORSAllowedOrigins: []string{"*"},
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
