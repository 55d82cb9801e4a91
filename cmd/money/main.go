package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneymgr/internal/config"
	"moneymgr/internal/entity"
	"moneymgr/internal/entrypoint/telegram"
	"moneymgr/internal/logger"
	"moneymgr/internal/usecase"
	"moneymgr/internal/usecase/repository/cache"
	"moneymgr/internal/usecase/repository/idempotence"
	"moneymgr/internal/usecase/repository/ledger"
	"moneymgr/internal/usecase/repository/user"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var token = flag.String("token", "", "telegram bot token, overrides TELEGRAM_TOKEN")
var adminID = flag.Int64("admin", 0, "telegram user allowed to talk to the bot, overrides TELEGRAM_ADMIN_ID")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *token != "" {
		cfg.Telegram.Token = *token
	}
	if *adminID != 0 {
		cfg.Telegram.AdminID = *adminID
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()

	db, err := bolt.Open(cfg.Cache.Path, 0600, nil)
	if err != nil {
		logger.Fatal("Failed to open cache", zap.Error(err))
	}
	defer db.Close()

	cacheRepository, err := cache.NewBoltDB(db, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	idempotenceRepository, err := idempotence.NewBoltDB(db)
	if err != nil {
		logger.Fatal("Failed to initialize idempotence records", zap.Error(err))
	}
	userRepository, err := user.NewBoltDB(db)
	if err != nil {
		logger.Fatal("Failed to initialize identity slot", zap.Error(err))
	}
	ledgerRepository := ledger.NewHTTP(cfg.Ledger.URL, cfg.Ledger.Timeout, appLogger)

	session := usecase.NewSession(ledgerRepository, cacheRepository, entity.NewPendingIDs(nil), appLogger)

	bot, err := telegram.New(
		cfg.Telegram.Token,
		cfg.Telegram.AdminID,
		usecase.NewIdempotence(idempotenceRepository),
		session,
		usecase.NewLogin(userRepository),
		usecase.NewLogout(userRepository),
		usecase.NewCurrentUser(userRepository),
		appLogger,
	)
	if err != nil {
		logger.Fatal("Failed to start telegram bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	txns := session.Refresh(ctx)
	logger.Info("Initial view loaded", zap.Int("transactions", len(txns)), zap.String("ledger", cfg.Ledger.URL))

	if cfg.Cache.RefreshInterval <= 0 {
		logger.Warn("Background refresh disabled", zap.Duration("interval", cfg.Cache.RefreshInterval))
	}
	go session.Run(ctx, cfg.Cache.RefreshInterval)
	go bot.PruneEvery(ctx, time.Hour)
	bot.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
}
