package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moneymgr/internal/config"
	"moneymgr/internal/ledgerd"
	"moneymgr/internal/ledgerd/store"
	"moneymgr/internal/logger"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var port = flag.String("port", "", "listen port, overrides LEDGERD_PORT")
var storeKind = flag.String("store", "", "bolt or postgres, overrides LEDGERD_STORE")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *storeKind != "" {
		cfg.Server.Store = *storeKind
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	ctx := context.Background()

	var s store.Store
	switch cfg.Server.Store {
	case "bolt":
		db, err := bolt.Open(cfg.Server.BoltPath, 0600, nil)
		if err != nil {
			logger.Fatal("Failed to open bolt database", zap.Error(err))
		}
		defer db.Close()

		s, err = store.NewBoltDB(db)
		if err != nil {
			logger.Fatal("Failed to initialize bolt store", zap.Error(err))
		}
	case "postgres":
		pool, err := store.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		s, err = store.NewPostgres(ctx, pool, appLogger)
		if err != nil {
			logger.Fatal("Failed to initialize postgres store", zap.Error(err))
		}
	default:
		logger.Fatal("Unknown store", zap.String("store", cfg.Server.Store))
	}

	app := ledgerd.SetupRouter(ledgerd.NewTransactionHandler(s, appLogger), appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Ledger starting", zap.String("address", addr), zap.String("store", cfg.Server.Store))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down ledger")
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
