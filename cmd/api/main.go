package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mgrady/bidwell/internal/adapters/api"
	"github.com/mgrady/bidwell/internal/adapters/store"
	"github.com/mgrady/bidwell/internal/clock"
	"github.com/mgrady/bidwell/internal/config"
	"github.com/mgrady/bidwell/internal/domain/items"
	"github.com/mgrady/bidwell/internal/sweeper"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring: one ledger, one service, one sweeper. The service and the
	// sweeper each get their own clock reference.
	ledger := store.NewMemoryLedger()
	itemService := items.NewService(ledger, clock.System())
	sweep := sweeper.New(itemService, clock.System(), cfg.SweepInterval, logger)
	handler := api.NewHandler(itemService, clock.System(), logger, cfg.StaticDir)

	if cfg.SeedDemo {
		if err := seedDemoItems(ctx, itemService); err != nil {
			logger.Error("Failed to seed demo items", "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded demo items")
	}

	sweep.Start()
	defer sweep.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "sweep_interval", cfg.SweepInterval.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// seedDemoItems creates a few listings so the demo UI has something to show
// on first run.
func seedDemoItems(ctx context.Context, svc *items.Service) error {
	now := time.Now()
	seeds := []items.CreateItemCommand{
		{
			Title:         "Vintage mechanical watch",
			Description:   "Hand-wound movement, serviced last year.",
			StartingPrice: 100,
			EndsAt:        now.Add(1 * time.Hour),
		},
		{
			Title:         "Mid-century desk lamp",
			Description:   "Original wiring replaced, brass shade.",
			StartingPrice: 40,
			EndsAt:        now.Add(30 * time.Minute),
		},
		{
			Title:         "First-edition paperback",
			Description:   "Some shelf wear, binding intact.",
			StartingPrice: 15,
			EndsAt:        now.Add(2 * time.Hour),
		},
	}

	for _, cmd := range seeds {
		if _, err := svc.CreateItem(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}
