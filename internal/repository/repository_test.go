package repository

import (
	"Clipvault/internal/model"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 测试用内嵌库；随机排序走 RANDOM() 分支，其余查询语义与 mysql 一致
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
