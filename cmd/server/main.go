package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/jusunglee/railmap-go/api/handlers"
	"github.com/jusunglee/railmap-go/internal/config"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/logging"
	"github.com/jusunglee/railmap-go/internal/middleware"
	"github.com/jusunglee/railmap-go/pkg/railmap"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (YAML or TOML)")
		port       = flag.Int("port", 0, "Server port, overrides config")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := railmap.NewLocal(ctx, railmap.Config{
		TransactionsFile: cfg.Data.Transactions,
		CoordinatesFile:  cfg.Data.Coordinates,
		LabelsFile:       cfg.Data.Labels,
		Columns: loader.Columns{
			Departure: cfg.Data.DepartureColumn,
			Arrival:   cfg.Data.ArrivalColumn,
			ID:        cfg.Data.IDColumn,
		},
		FetchTimeout: cfg.Data.FetchTimeout,
		CacheSize:    cfg.Cache.Size,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load route data")
	}

	r := mux.NewRouter()
	h := handlers.NewHandler(client)
	h.RegisterRoutes(r)

	r.Use(middleware.RequestID, middleware.AccessLog, middleware.Prometheus)

	// CORS and rate limiting wrap the router so preflight requests, which
	// match no route, are still answered.
	var handler http.Handler = r
	handler = middleware.RateLimit(cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow, cfg.Server.RateLimitDisabled)(handler)
	handler = middleware.CORS(cfg.Server.CORSOrigins)(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logging.Info().Msg("Server stopped")
}
