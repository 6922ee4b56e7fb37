package main

import (
	"Clipvault/internal/config"
	"Clipvault/internal/converter"
	"Clipvault/internal/pkg/database"
	"Clipvault/internal/pkg/logger"
	"Clipvault/internal/repository"
	"context"
	"flag"
	log "log/slog"
	"os"
)

func main() {
	census := flag.Bool("census", false, "only print the extension histogram of the mounted sources")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	logger.InitLogger()

	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	conv := converter.New(cfg, repository.NewImageRepository(db))

	if *census {
		err = conv.Census()
	} else {
		err = conv.Run(context.Background())
	}
	if err != nil {
		log.Error("conversion batch failed", "err", err)
		os.Exit(1)
	}
}
