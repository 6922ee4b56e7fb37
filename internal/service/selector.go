package service

import (
	"Clipvault/internal/model"
	"Clipvault/internal/pkg/consts"
	"Clipvault/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SelectorService interface {
	PickFresh(ctx context.Context) (*model.ClipartImage, error)
	FindCompanion(ctx context.Context, filename string, originCD int, subdirectories string) (*model.ClipartImage, error)
}

type selectorServiceImpl struct {
	imageRepo   repository.ImageRepo
	recentLimit int
}

func NewSelectorService(imageRepo repository.ImageRepo, recentLimit int) SelectorService {
	if recentLimit <= 0 {
		recentLimit = consts.RecentLimitDefault
	}
	return &selectorServiceImpl{
		imageRepo:   imageRepo,
		recentLimit: recentLimit,
	}
}

// PickFresh 随机选一张待发图，避开最近发过帖的子目录。
// 只回看已发布的记录，永久跳过的子目录不参与排除
func (s *selectorServiceImpl) PickFresh(ctx context.Context) (*model.ClipartImage, error) {
	recent, err := s.imageRepo.ListRecentlyPosted(ctx, s.recentLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(recent))
	var exclude []string
	for _, img := range recent {
		if _, ok := seen[img.Subdirectories]; !ok {
			seen[img.Subdirectories] = struct{}{}
			exclude = append(exclude, img.Subdirectories)
		}
	}

	img, err := s.imageRepo.SelectFresh(ctx, exclude)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoFreshImages
	}
	if err != nil {
		return nil, err
	}

	if err = img.Hydrate(); err != nil {
		return nil, err
	}
	return img, nil
}

// FindCompanion 按文件身份解析操作者手输的同目录文件名
func (s *selectorServiceImpl) FindCompanion(ctx context.Context, filename string, originCD int, subdirectories string) (*model.ClipartImage, error) {
	img, err := s.imageRepo.FindByFileIdentity(ctx, filename, originCD, subdirectories)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	if err = img.Hydrate(); err != nil {
		return nil, err
	}
	return img, nil
}
