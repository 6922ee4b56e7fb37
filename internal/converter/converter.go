package converter

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/repository"
	"context"
	"errors"
	"io"
	"io/fs"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

// 需要转成 png 的格式；wmf 没有 Go 解码器，会走失败分支留下 failed_to_save 记录
var endingsForConversion = map[string]bool{
	".wmf": true, ".tif": true, ".tiff": true,
}

// 直接转存的格式
var endingsForSave = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".htm": true,
}

// Converter 把挂载光盘上的文件转存进归档目录并逐一建档
type Converter struct {
	cfg       *config.Config
	imageRepo repository.ImageRepo
}

func New(cfg *config.Config, imageRepo repository.ImageRepo) *Converter {
	return &Converter{
		cfg:       cfg,
		imageRepo: imageRepo,
	}
}

func (c *Converter) Run(ctx context.Context) error {
	log.Info("Saving images", "output_dir", c.cfg.Images.BaseDir)

	for _, src := range c.cfg.Convert.Sources {
		if err := c.convertSource(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) convertSource(ctx context.Context, src config.ConvertSource) error {
	log.Info("Converting CD", "origin_cd", src.OriginCD, "mount", src.Mount)

	processed := 0
	failures := 0

	err := filepath.WalkDir(src.Mount, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !endingsForConversion[ext] && !endingsForSave[ext] {
			return nil
		}

		processed++
		if processed%1000 == 0 {
			log.Info("conversion progress", "origin_cd", src.OriginCD, "processed", processed)
		}

		if failed, pErr := c.processFile(ctx, src, path, ext); pErr != nil {
			return pErr
		} else if failed {
			failures++
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("CD finished", "origin_cd", src.OriginCD, "processed", processed, "conversion_errors", failures)
	return nil
}

// processFile 转存单个文件并插入记录；转换失败不中断批次，只在记录上打标
func (c *Converter) processFile(ctx context.Context, src config.ConvertSource, path, ext string) (bool, error) {
	shouldConvert := endingsForConversion[ext]

	filename := filepath.Base(path)
	if shouldConvert {
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".png"
	}

	rel, err := filepath.Rel(src.Mount, filepath.Dir(path))
	if err != nil {
		return false, err
	}
	subdirectory := ""
	if rel != "." {
		subdirectory = filepath.ToSlash(rel)
	}

	outputDir := filepath.Join(c.cfg.Images.BaseDir, rel)
	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return false, err
	}
	outputLocation := filepath.Join(outputDir, filename)

	// 断点续跑：文件已经转存过就只补建缺失的档案记录
	if _, sErr := os.Stat(outputLocation); sErr == nil {
		return false, c.catalogIfMissing(ctx, src, filename, subdirectory, ext)
	}

	failed := false
	if shouldConvert {
		img, oErr := imaging.Open(path)
		if oErr != nil {
			log.Warn("cannot decode source file", "path", path, "err", oErr)
			failed = true
		} else if sErr := imaging.Save(img, outputLocation); sErr != nil {
			log.Warn("cannot save converted file", "path", outputLocation, "err", sErr)
			failed = true
		}
	} else if cErr := copyFile(path, outputLocation); cErr != nil {
		log.Warn("cannot copy source file", "path", path, "err", cErr)
		failed = true
	}

	record := &model.ClipartImage{
		Filename:              filename,
		OriginCD:              src.OriginCD,
		Subdirectories:        subdirectory,
		OriginalFileExtension: strings.TrimPrefix(ext, "."),
		FailedToSave:          failed,
	}
	return failed, c.imageRepo.Insert(ctx, record)
}

func (c *Converter) catalogIfMissing(ctx context.Context, src config.ConvertSource, filename, subdirectory, ext string) error {
	_, err := c.imageRepo.FindByFileIdentity(ctx, filename, src.OriginCD, subdirectory)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	record := &model.ClipartImage{
		Filename:              filename,
		OriginCD:              src.OriginCD,
		Subdirectories:        subdirectory,
		OriginalFileExtension: strings.TrimPrefix(ext, "."),
	}
	return c.imageRepo.Insert(ctx, record)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
