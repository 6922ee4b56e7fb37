package job

import (
	"Clipvault/internal/repository"
	"context"
	log "log/slog"
)

// TokenReapJob 清理已过期的令牌行。令牌刷新只追加新行，历史行靠这里回收
type TokenReapJob struct {
	tokenRepo repository.TokenRepo
}

func NewTokenReapJob(tokenRepo repository.TokenRepo) *TokenReapJob {
	return &TokenReapJob{tokenRepo: tokenRepo}
}

func (s *TokenReapJob) Run() {
	ctx := context.Background()

	count, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Error("failed to reap expired tokens", "err", err)
		return
	}

	if count > 0 {
		log.Info("reaped expired token rows", "count", count)
	}
}
