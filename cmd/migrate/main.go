package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/config"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/storage/postgres"
	"github.com/mmoldabe-dev/ListingSubscriptions/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "rollback the last migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error to load config: %s", err)
		os.Exit(1)
	}
	log := logger.SetupLogger(cfg.Logger.Level, "listing_subscriptions_migrate")

	if *down {
		err = postgres.RollbackMigrations(cfg, log)
	} else {
		err = postgres.RunMigrations(cfg, log)
	}
	if err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("migrations done")
}
