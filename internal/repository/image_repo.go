package repository

import (
	"Clipvault/internal/model"
	"Clipvault/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

type ImageRepo interface {
	Insert(ctx context.Context, img *model.ClipartImage) error
	MarkCorrupted(ctx context.Context, id uint64) error
	MarkPosted(ctx context.Context, id uint64) error
	MarkSkipped(ctx context.Context, id uint64) error
	FindByFileIdentity(ctx context.Context, filename string, originCD int, subdirectories string) (*model.ClipartImage, error)
	FindByID(ctx context.Context, id uint64) (*model.ClipartImage, error)
	ListRecentlyPosted(ctx context.Context, limit int) ([]*model.ClipartImage, error)
	SelectFresh(ctx context.Context, excludeSubdirectories []string) (*model.ClipartImage, error)
}

type ImageRepoImpl struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepo {
	return &ImageRepoImpl{
		db: db,
	}
}

// Insert 新记录未发布时不带 posted_on 列，让列默认值生效
func (s ImageRepoImpl) Insert(ctx context.Context, img *model.ClipartImage) error {
	tx := s.db.WithContext(ctx)
	if img.PostedOn == nil {
		tx = tx.Omit("posted_on")
	}
	return tx.Create(img).Error
}

func (s ImageRepoImpl) MarkCorrupted(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.ClipartImage{}).
		Where("id = ?", id).
		Update("failed_to_save", true).Error
}

func (s ImageRepoImpl) MarkPosted(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.ClipartImage{}).
		Where("id = ?", id).
		Update("posted_on", time.Now().UTC()).Error
}

// MarkSkipped 把 posted_on 写成哨兵零点而不是当前时间，
// 记录从此退出选图，但仍能和真正发布过的区分开
func (s ImageRepoImpl) MarkSkipped(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.ClipartImage{}).
		Where("id = ?", id).
		Update("posted_on", consts.SkippedForever).Error
}

func (s ImageRepoImpl) FindByFileIdentity(ctx context.Context, filename string, originCD int, subdirectories string) (*model.ClipartImage, error) {
	var img model.ClipartImage
	err := s.db.WithContext(ctx).
		Where("filename = ? AND origin_cd = ? AND subdirectories = ?", filename, originCD, subdirectories).
		Take(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (s ImageRepoImpl) FindByID(ctx context.Context, id uint64) (*model.ClipartImage, error) {
	var img model.ClipartImage
	err := s.db.WithContext(ctx).First(&img, id).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListRecentlyPosted 只用于收集最近用过的子目录，去重由调用方完成。
// 哨兵零点不算发布，不计入最近列表
func (s ImageRepoImpl) ListRecentlyPosted(ctx context.Context, limit int) ([]*model.ClipartImage, error) {
	var imgs []*model.ClipartImage
	err := s.db.WithContext(ctx).
		Where("posted_on IS NOT NULL").
		Where("posted_on <> ?", consts.SkippedForever).
		Order("posted_on DESC").
		Limit(limit).
		Find(&imgs).Error
	if err != nil {
		return nil, err
	}
	return imgs, nil
}

// SelectFresh 随机取一张未发布且未损坏的图，可排除最近用过的子目录。
// 没有命中时返回 gorm.ErrRecordNotFound，由上层翻译成「没图可发」
func (s ImageRepoImpl) SelectFresh(ctx context.Context, excludeSubdirectories []string) (*model.ClipartImage, error) {
	tx := s.db.WithContext(ctx).
		Where("posted_on IS NULL").
		Where("failed_to_save = ?", false)
	if len(excludeSubdirectories) > 0 {
		tx = tx.Where("subdirectories NOT IN ?", excludeSubdirectories)
	}

	var img model.ClipartImage
	err := tx.Order(s.randomOrder()).Limit(1).Take(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// randomOrder mysql 与 sqlite（测试用）的随机函数名不同
func (s ImageRepoImpl) randomOrder() string {
	if s.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
