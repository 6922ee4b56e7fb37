package converter

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/repository"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (repository.ImageRepo, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err = db.AutoMigrate(&model.ClipartImage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewImageRepository(db), db
}

func writeMountFile(t *testing.T, mount, subdir, name string, data []byte) {
	t.Helper()
	dir := filepath.Join(mount, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

type converterFixture struct {
	conv    *Converter
	repo    repository.ImageRepo
	db      *gorm.DB
	baseDir string
}

func newTestConverter(t *testing.T, mount string) converterFixture {
	t.Helper()
	repo, db := newTestRepo(t)
	baseDir := t.TempDir()
	cfg := &config.Config{
		Images: config.ImagesConfig{BaseDir: baseDir},
		Convert: config.ConvertConfig{
			Sources: []config.ConvertSource{{OriginCD: 4, Mount: mount}},
		},
	}
	return converterFixture{
		conv:    New(cfg, repo),
		repo:    repo,
		db:      db,
		baseDir: baseDir,
	}
}

func TestRunCopiesAndCatalogs(t *testing.T) {
	mount := t.TempDir()
	writeMountFile(t, mount, "BEARS", "BEAR01.GIF", []byte("gif bytes"))
	writeMountFile(t, mount, "", "ROOT.HTM", []byte("<html>"))
	writeMountFile(t, mount, "BEARS", "README.TXT", []byte("ignored"))

	fx := newTestConverter(t, mount)
	if err := fx.conv.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(fx.baseDir, "BEARS", "BEAR01.GIF")); err != nil {
		t.Errorf("copied file missing: %v", err)
	}

	rec, err := fx.repo.FindByFileIdentity(context.Background(), "BEAR01.GIF", 4, "BEARS")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.OriginalFileExtension != "gif" {
		t.Errorf("extension = %q, want gif", rec.OriginalFileExtension)
	}
	if rec.FailedToSave {
		t.Error("plain copy flagged as failed")
	}

	// 光盘根目录下的文件子目录为空串
	if _, err = fx.repo.FindByFileIdentity(context.Background(), "ROOT.HTM", 4, ""); err != nil {
		t.Errorf("root file not cataloged: %v", err)
	}

	// 不在清单里的扩展名不建档
	if _, err = fx.repo.FindByFileIdentity(context.Background(), "README.TXT", 4, "BEARS"); err == nil {
		t.Error("unlisted extension was cataloged")
	}
}

func TestRunRecordsDecodeFailure(t *testing.T) {
	mount := t.TempDir()
	writeMountFile(t, mount, "BEARS", "BEAR01.WMF", []byte("not an image"))

	fx := newTestConverter(t, mount)
	if err := fx.conv.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// 记录的是目标 png 名，不是源文件名
	rec, err := fx.repo.FindByFileIdentity(context.Background(), "BEAR01.png", 4, "BEARS")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !rec.FailedToSave {
		t.Error("decode failure not flagged")
	}
	if rec.OriginalFileExtension != "wmf" {
		t.Errorf("extension = %q, want wmf", rec.OriginalFileExtension)
	}

	if _, err = os.Stat(filepath.Join(fx.baseDir, "BEARS", "BEAR01.png")); err == nil {
		t.Error("output file exists despite decode failure")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	mount := t.TempDir()
	writeMountFile(t, mount, "BEARS", "BEAR01.GIF", []byte("gif bytes"))

	fx := newTestConverter(t, mount)
	if err := fx.conv.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := fx.conv.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	// 重跑不追加重复记录
	var count int64
	err := fx.db.Model(&model.ClipartImage{}).Count(&count).Error
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d after rerun, want 1", count)
	}
}
