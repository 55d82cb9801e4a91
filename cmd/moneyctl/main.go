package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"moneymgr/internal/config"
	"moneymgr/internal/entity"
	"moneymgr/internal/entrypoint/cli"
	"moneymgr/internal/logger"
	"moneymgr/internal/usecase"
	"moneymgr/internal/usecase/repository/cache"
	"moneymgr/internal/usecase/repository/ledger"
	"moneymgr/internal/usecase/repository/user"

	"github.com/google/subcommands"
	bolt "go.etcd.io/bbolt"
)

var ledgerURL = flag.String("ledger", "", "ledger base URL, overrides LEDGER_URL")
var cachePath = flag.String("cache", "", "local cache file, overrides CACHE_PATH")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := &cli.App{Out: os.Stdout, Err: os.Stderr}
	cli.Register(commander, app)

	flag.Parse()
	os.Exit(int(run(commander, app)))
}

// run returns instead of exiting so deferred cleanup, the logger sync
// included, happens before the process ends.
func run(commander *subcommands.Commander, app *cli.App) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return subcommands.ExitFailure
	}
	if *ledgerURL != "" {
		cfg.Ledger.URL = *ledgerURL
	}
	if *cachePath != "" {
		cfg.Cache.Path = *cachePath
	}

	// Logs go to stderr and stay quiet unless LOG_LEVEL asks otherwise.
	level := cfg.Logger.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	if err := logger.Init(level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()
	appLogger := logger.Get()

	db, err := bolt.Open(cfg.Cache.Path, 0600, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	cacheRepository, err := cache.NewBoltDB(db, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize cache: %v\n", err)
		return subcommands.ExitFailure
	}
	userRepository, err := user.NewBoltDB(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize identity slot: %v\n", err)
		return subcommands.ExitFailure
	}

	app.Session = usecase.NewSession(
		ledger.NewHTTP(cfg.Ledger.URL, cfg.Ledger.Timeout, appLogger),
		cacheRepository,
		entity.NewPendingIDs(nil),
		appLogger,
	)
	app.Login = usecase.NewLogin(userRepository)
	app.Logout = usecase.NewLogout(userRepository)
	app.CurrentUser = usecase.NewCurrentUser(userRepository)

	return commander.Execute(context.Background())
}
