package main

import (
	"Clipvault/internal/app"
	"Clipvault/internal/config"
	"Clipvault/internal/pkg/cron"
	"Clipvault/internal/pkg/database"
	"Clipvault/internal/pkg/logger"
	"Clipvault/internal/service"
	"Clipvault/internal/wire"
	"context"
	"errors"
	log "log/slog"
	"os"
)

func main() {
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

	container, err := wire.BuildApplication(db, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	if err = cron.InitCron(container.Cron); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	defer container.Cron.Stop()

	poster := app.NewPostingApp(cfg, container.Selector, container.Session, container.ImageRepo)
	if err = poster.Run(context.Background()); err != nil {
		if errors.Is(err, service.ErrNoFreshImages) {
			os.Exit(53)
		}
		log.Error("posting flow aborted", "err", err)
		os.Exit(1)
	}
}
