package main

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/pkg/database"
	"Clipvault/internal/pkg/logger"
	log "log/slog"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}

	logger.InitLogger()

	db, err := database.NewGormDB(&config.Cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	if err = db.AutoMigrate(&model.ClipartImage{}, &model.Token{}); err != nil {
		log.Error("Fatal error: migration failed", "err", err)
		panic(err)
	}

	log.Info("schema migration finished")
}
