package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/api"
	"github.com/travelo-app/travelo/internal/feed"
	"github.com/travelo-app/travelo/internal/hive"
	"github.com/travelo-app/travelo/internal/store"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Travelo gateway")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Persisted client state: Redis when configured, in-memory otherwise
	var backend store.Store
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedis(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		backend = redisStore
	} else {
		logger.Info("No Redis configured, state will not survive restarts")
		backend = store.NewMemory()
	}
	state := store.NewState(backend)

	// Blockchain gateway
	hiveClient, err := hive.New(&cfg.Hive)
	if err != nil {
		logger.Fatal("Failed to initialize Hive client", zap.Error(err))
	}

	// Wallet bridge; absence is reported per-operation, not fatal here
	bridge := wallet.NewKeychain(&cfg.Wallet)
	if !bridge.Available() {
		logger.Warn("Wallet bridge is not reachable, signing operations will be rejected")
	}

	feedSvc := feed.NewService(hiveClient, state, cfg.Feed)
	actionSvc := actions.New(bridge, hiveClient, state, cfg)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(feedSvc, actionSvc, cfg)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
