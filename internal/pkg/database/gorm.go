package database

import (
	"Clipvault/internal/config"
	"Clipvault/internal/pkg/keyring"
	"Clipvault/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewGormDB 初始化并返回 *gorm.DB 实例，目标库不存在时先建库
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	user, err := keyring.Get(keyring.ServiceMysql, "username")
	if err != nil {
		return nil, err
	}
	password, err := keyring.Get(keyring.ServiceMysql, "password")
	if err != nil {
		return nil, err
	}

	db, err := open(dsn(user, password, cfg.Host, cfg.Database))
	if err != nil {
		if err = createDatabase(user, password, cfg); err != nil {
			return nil, err
		}
		db, err = open(dsn(user, password, cfg.Host, cfg.Database))
		if err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established successfully.")
	return db, nil
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return db, nil
}

// createDatabase 用无库名连接补建目标库
func createDatabase(user, password string, cfg *config.DBConfig) error {
	db, err := open(dsn(user, password, cfg.Host, ""))
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, dErr := db.DB(); dErr == nil {
			_ = sqlDB.Close()
		}
	}()

	log.Info("Target database missing, creating it", "database", cfg.Database)
	return db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s;", cfg.Database)).Error
}

func dsn(user, password, host, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", user, password, host, database)
}
