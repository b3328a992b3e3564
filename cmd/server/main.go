package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/adapter"
	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/handler"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/server"
	"github.com/MKhiriev/go-record-keeper/internal/service"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("record-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	notifier, err := adapter.NewWebhookNotifier(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating alert notifier")
	}

	services, err := service.NewServices(*storages, cfg, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	sweeper := workers.NewAttemptSweeper(storages.AttemptStateRepository, cfg.Workers, log)

	srv, err := server.NewServer(handlers, cfg.Server, log, sweeper)
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
