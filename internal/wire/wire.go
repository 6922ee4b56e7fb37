package wire

import (
	"Clipvault/internal/config"
	"Clipvault/internal/job"
	"Clipvault/internal/pkg/cron"
	"Clipvault/internal/pkg/keyring"
	"Clipvault/internal/repository"
	"Clipvault/internal/service"

	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	DB        *gorm.DB
	ImageRepo repository.ImageRepo
	TokenRepo repository.TokenRepo
	Selector  service.SelectorService
	Session   service.SessionService
	Cron      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	imageRepo := repository.NewImageRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	clientID, err := keyring.Get(keyring.ServiceTumblr, "client_id")
	if err != nil {
		return nil, err
	}
	clientSecret, err := keyring.Get(keyring.ServiceTumblr, "client_secret")
	if err != nil {
		return nil, err
	}

	selector := service.NewSelectorService(imageRepo, cfg.Selector.RecentLimit)
	session := service.NewSessionService(&cfg.Tumblr, cfg.Images.BaseDir, tokenRepo, clientID, clientSecret)

	cronMgr := cron.NewCronManager(job.NewTokenReapJob(tokenRepo))

	return &ApplicationContainer{
		DB:        db,
		ImageRepo: imageRepo,
		TokenRepo: tokenRepo,
		Selector:  selector,
		Session:   session,
		Cron:      cronMgr,
	}, nil
}
