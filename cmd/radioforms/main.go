package main

import (
	"context"
	"fmt"

	"github.com/davistroy/radioforms-sub003/internal/config"
	handler "github.com/davistroy/radioforms-sub003/internal/handler/http"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/server"
	"github.com/davistroy/radioforms-sub003/internal/service"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("radioforms")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	catalog, err := template.NewCatalog(cfg.Templates, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading template catalog")
	}

	storages := store.NewStorages(db, cfg.Storage, log)
	services := service.NewServices(storages, catalog, *cfg, log)

	janitor := workers.NewCacheJanitor(storages, cfg.Storage.Cache.TTL, log)
	workers.NewWorkers(janitor).Run()
	defer janitor.Stop()

	version := cfg.App.Version
	if version == "" {
		version = buildVersion
	}
	handlers := handler.NewHandler(services, version, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
