package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/rmedina/stockroom-backend/api/routes"
	"github.com/rmedina/stockroom-backend/internal/cart"
	"github.com/rmedina/stockroom-backend/internal/catalog"
	"github.com/rmedina/stockroom-backend/internal/checkout"
	"github.com/rmedina/stockroom-backend/internal/dashboard"
	"github.com/rmedina/stockroom-backend/internal/orders"
	"github.com/rmedina/stockroom-backend/internal/products"
	"github.com/rmedina/stockroom-backend/internal/seed"
	"github.com/rmedina/stockroom-backend/internal/session"
	"github.com/rmedina/stockroom-backend/internal/users"
	"github.com/rmedina/stockroom-backend/pkg/config"
	"github.com/rmedina/stockroom-backend/pkg/delay"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "stockroom"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "stockroom",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	slots, err := kvstate.Open(context.Background(), cfg.State, cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to open state backend", err)
		os.Exit(1)
	}

	data, err := seed.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load seed data", err)
		os.Exit(1)
	}

	directory := users.NewDirectory(data.Users)
	store := catalog.NewStore(data.Products)
	book := orders.NewBook(data.Orders, logg)

	sessions, err := session.NewStore(context.Background(), directory, slots, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build session store", err)
		os.Exit(1)
	}
	crt, err := cart.NewStore(context.Background(), store, slots, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart store", err)
		os.Exit(1)
	}

	sleeper := delay.NewFixed(cfg.Checkout.SimulatedDelay)
	registry := prometheus.NewRegistry()

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Slots:       slots,
		Catalog:     store,
		Sessions:    sessions,
		Cart:        crt,
		Orders:      book,
		Checkout:    checkout.NewService(sessions, crt, book, sleeper, logg),
		Products:    products.NewService(store, nil, logg),
		Dashboard:   dashboard.NewService(store, book),
		Sleeper:     sleeper,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"addr":  addr,
		"state": cfg.State.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closeErr := multierr.Append(
		server.Shutdown(shutdownCtx),
		slots.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
