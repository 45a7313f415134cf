package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/api/middleware"
	"github.com/feral-file/ff-marketplace/internal/api/server"
	"github.com/feral-file/ff-marketplace/internal/config"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/escrow"
	"github.com/feral-file/ff-marketplace/internal/events"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/marketplace"
	"github.com/feral-file/ff-marketplace/internal/providers/jetstream"
	"github.com/feral-file/ff-marketplace/internal/settlement"
	"github.com/feral-file/ff-marketplace/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "marketplace-api",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Marketplace API")

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	dataStore := openStore(ctx, cfg)

	// Publish domain events when NATS is configured
	dispatcher := events.NewDiscard(clock)
	if cfg.NATS.URL != "" {
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		dispatcher = events.NewDispatcher(publisher, clock, events.Config{
			WorkerPoolSize: cfg.Worker.WorkerPoolSize,
			QueueSize:      cfg.Worker.WorkerQueueSize,
			MaxElapsedTime: cfg.Worker.MaxElapsedTime,
		})
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL), zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, marketplace events will not be published")
	}
	defer dispatcher.Close()

	// Config validation has already checked these values
	custody, _ := domain.ParseAddress(cfg.Marketplace.CustodyAddress)
	operator, _ := domain.ParseAddress(cfg.Marketplace.OperatorAddress)
	listingFee, _ := domain.ParseAmount(cfg.Marketplace.ListingFee)

	svc := marketplace.New(marketplace.Dependencies{
		Store:      dataStore,
		Settlement: settlement.NewLedger(),
		Dispatcher: dispatcher,
		Clock:      clock,
		JSON:       jsonAdapter,
		JCS:        adapter.NewJCS(),
		Escrow: escrow.Config{
			Custody:    custody,
			Operator:   operator,
			ListingFee: listingFee,
		},
	})

	// Create and start server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			Issuer:       cfg.Auth.Issuer,
		},
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimitRPS,
			Burst:             cfg.Server.RateLimitBurst,
		},
	}, svc)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}

// openStore connects the configured persistence backend
func openStore(ctx context.Context, cfg *config.APIConfig) store.Store {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.WarnCtx(ctx, "Using in-memory store, state is lost on restart")
		return store.NewMemoryStore()
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
	}

	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	return store.NewPGStore(db)
}
