package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-warden/internal/adapter"
	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/handler"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/server"
	"github.com/MKhiriev/go-vault-warden/internal/service"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/internal/workers"
	"github.com/MKhiriev/go-vault-warden/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-warden-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	vault := adapter.NewVaultClient(cfg.Adapter, log)

	services, err := service.NewServices(storages, vault, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, db, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	dispatcher := workers.NewDispatcher(storages.EventRepository, cfg.Workers, log)
	go workers.NewWorkers(dispatcher).Run()

	servers.RunServer()
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
