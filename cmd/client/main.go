package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trainingportal/internal/buildinfo"
	"github.com/dmitrijs2005/trainingportal/internal/client/cache"
	"github.com/dmitrijs2005/trainingportal/internal/client/cli"
	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/config"
	"github.com/dmitrijs2005/trainingportal/internal/client/feed"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
	"github.com/dmitrijs2005/trainingportal/internal/client/storage"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

const breakerFailures = 3

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	db, err := storage.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	// the online watcher pings every OnlineCheckInterval, so that is also the
	// natural cooldown before a half-open probe
	api, err := client.NewHTTPClient(cfg.APIBaseURL, logger,
		client.WithCircuitBreaker(breakerFailures, cfg.OnlineCheckInterval))
	if err != nil {
		log.Fatalf("%v", err)
	}

	c := cache.New(storage.NewSQLiteRepository(db), cfg.CachePassphrase, logger.With("component", "cache"))
	session := services.NewSessionService(api, c, logger)
	catalog := services.NewCatalogService(api, logger)
	fc := feed.NewController(catalog, session, cfg.PollInterval, logger)

	app := cli.NewApp(cfg, session, catalog, fc, logger)
	app.Root(ctx)

}
