package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DevSlashRichie/coinme/internal/cache"
	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/jobs"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/DevSlashRichie/coinme/internal/server"
	"github.com/DevSlashRichie/coinme/internal/service"
	"github.com/DevSlashRichie/coinme/internal/store"
	"github.com/DevSlashRichie/coinme/internal/store/memory"
	"github.com/DevSlashRichie/coinme/internal/tracing"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel)

	if err := run(cfg); err != nil {
		logger.Error("Service stopped with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("Failed to shutdown tracer provider", err)
		}
	}()

	var (
		loans      service.LoanStore
		securities service.SecurityStore
		txs        service.TransactionStore
	)
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := store.ConnectToMongoDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Error("Failed to disconnect from MongoDB", err)
			}
		}()
		if err := client.EnsureIndexes(ctx); err != nil {
			return err
		}
		loans = store.NewLoanStore(client)
		securities = store.NewSecurityStore(client)
		txs = store.NewTransactionStore(client)
	default:
		logger.Info("Using in-memory store")
		loans = memory.NewLoanStore()
		securities = memory.NewSecurityStore()
		txs = memory.NewTransactionStore()
	}

	var balances service.BalanceCache = cache.Noop{}
	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		balances = cache.NewRedisBalanceCache(rdb, cfg.BalanceCacheTTL)
	}

	svc := server.Services{
		Loans:        service.NewLoanService(cfg, loans),
		Securities:   service.NewSecurityService(securities),
		Transactions: service.NewTransactionService(txs, balances),
	}

	sweep, err := jobs.NewMaturitySweep(ctx, svc.Securities, cfg.MaturitySweepSchedule)
	if err != nil {
		return err
	}
	sweep.Start()
	defer sweep.Stop()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      server.SetupRouter(cfg.OTELServiceName, svc),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", slog.Int("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
