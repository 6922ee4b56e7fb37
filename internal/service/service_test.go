package service

import (
	"Clipvault/internal/model"
	"Clipvault/internal/repository"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err = db.AutoMigrate(&model.ClipartImage{}, &model.Token{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedImage(t *testing.T, repo repository.ImageRepo, filename, subdir string) *model.ClipartImage {
	t.Helper()
	img := &model.ClipartImage{
		Filename:              filename,
		OriginCD:              2,
		Subdirectories:        subdir,
		OriginalFileExtension: "WMF",
	}
	if err := repo.Insert(context.Background(), img); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return img
}

func setPostedOn(t *testing.T, db *gorm.DB, id uint64, at time.Time) {
	t.Helper()
	err := db.Model(&model.ClipartImage{}).Where("id = ?", id).Update("posted_on", at).Error
	if err != nil {
		t.Fatalf("set posted_on: %v", err)
	}
}
