package repository

import (
	"Clipvault/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type TokenRepo interface {
	Latest(ctx context.Context) (*model.Token, error)
	Insert(ctx context.Context, tok *model.Token) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type TokenRepoImpl struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepo {
	return &TokenRepoImpl{
		db: db,
	}
}

// Latest 按过期时间取最新一条，最晚过期的就是当前令牌
func (s TokenRepoImpl) Latest(ctx context.Context) (*model.Token, error) {
	var tok model.Token
	err := s.db.WithContext(ctx).
		Order("expires_on DESC").
		Take(&tok).Error
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// Insert 只插入不覆盖，旧令牌行留作历史
func (s TokenRepoImpl) Insert(ctx context.Context, tok *model.Token) error {
	return s.db.WithContext(ctx).Create(tok).Error
}

func (s TokenRepoImpl) DeleteExpired(ctx context.Context) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("expires_on < ?", time.Now().UTC()).
		Delete(&model.Token{})
	return tx.RowsAffected, tx.Error
}
