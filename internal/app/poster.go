package app

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/post"
	"Clipvault/internal/repository"
	"Clipvault/internal/service"
	"bufio"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"strings"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// PostingApp 控制台发帖流程：选图、预览、确认、组帖、提交、标记
type PostingApp struct {
	cfg       *config.Config
	selector  service.SelectorService
	session   service.SessionService
	imageRepo repository.ImageRepo
	in        *bufio.Reader
}

func NewPostingApp(cfg *config.Config, selector service.SelectorService, session service.SessionService, imageRepo repository.ImageRepo) *PostingApp {
	return &PostingApp{
		cfg:       cfg,
		selector:  selector,
		session:   session,
		imageRepo: imageRepo,
		in:        bufio.NewReader(os.Stdin),
	}
}

// imageSummary 展示给操作者看的字段子集
type imageSummary struct {
	ID             uint64
	Filename       string
	OriginCD       int
	Subdirectories string
}

func (a *PostingApp) Run(ctx context.Context) error {
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	for {
		img, err := a.selector.PickFresh(ctx)
		if errors.Is(err, service.ErrNoFreshImages) {
			fmt.Println("No images to post! Either something went wrong or you finally posted them all. " +
				"Double check and rerun the program.")
			return err
		}
		if err != nil {
			return err
		}

		var summary imageSummary
		if cErr := copier.Copy(&summary, img); cErr == nil {
			fmt.Printf("id %d, filename %s\nFrom disc %d, subdirectory %q\n",
				summary.ID, summary.Filename, summary.OriginCD, summary.Subdirectories)
		}

		// 预览在后台打开，流程继续问答；进入下一张前汇合
		preview, _ := errgroup.WithContext(ctx)
		preview.Go(func() error {
			return a.openPreview(img)
		})

		if a.promptChoice("Do you want to post this image? (y/n)", "y", "n") == "n" {
			log.Info("Not posting image.", "id", img.ID)
			if err = a.imageRepo.MarkSkipped(ctx, img.ID); err != nil {
				return err
			}
		} else if err = a.composeAndSubmit(ctx, img); err != nil {
			return err
		}

		fmt.Println("Close the image to continue.")
		if err = preview.Wait(); err != nil {
			log.Warn("preview failed", "err", err)
		}

		if a.promptChoice("Press enter to post another image, or type 'x' to quit.", "", "x") == "x" {
			return nil
		}
	}
}

// ensureSession 优先复用库里的令牌，没有就走一遍授权码流程
func (a *PostingApp) ensureSession(ctx context.Context) error {
	resumed, err := a.session.TryResumeSession(ctx)
	if err != nil {
		return err
	}
	if resumed {
		return nil
	}

	for {
		authURL, err := a.session.BeginAuthorization()
		if err != nil {
			return err
		}

		fmt.Printf("Click this link to authorize app: %s\n", authURL)
		redirect := a.prompt("Then, paste the full redirect URL here: ")

		err = a.session.CompleteAuthorization(ctx, redirect)
		if err == nil {
			return nil
		}
		if !errors.Is(err, service.ErrAuthFailed) {
			return err
		}
		log.Error("Authentication failed. Please try again.")
	}
}

// composeAndSubmit 组帖并提交。伙伴图找不到或校验不过只记日志跳过；
// 提交失败不碰本地记录，同一帖可以整个重来
func (a *PostingApp) composeAndSubmit(ctx context.Context, img *model.ClipartImage) error {
	p, err := post.New(&a.cfg.Tumblr, img)
	if err != nil {
		return err
	}

	companions := a.prompt("Are there any additional images you want to post with this one? " +
		"If so, enter their names as a comma separated list. Leave blank for none. ")
	for _, name := range strings.Split(companions, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		companion, fErr := a.selector.FindCompanion(ctx, name, img.OriginCD, img.Subdirectories)
		if fErr != nil {
			log.Error("could not find image in the database, skipping", "filename", name, "err", fErr)
			continue
		}
		if aErr := p.AddImage(companion); aErr != nil {
			log.Error("could not add image to post, skipping", "filename", name, "err", aErr)
		}
	}

	for _, member := range p.Images() {
		member.AltText = a.prompt(fmt.Sprintf("Enter alt text for %s: ", member.Filename))
	}

	p.Caption = a.prompt("What should the caption be for this post? (Leave blank for none) ")
	if tags := a.prompt("Enter any additional tags beyond the standard set. Leave blank for none. "); tags != "" {
		p.AddTags(tags)
	}

	log.Info("Posting image...", "id", img.ID, "images", len(p.Images()))
	resp, err := a.session.Submit(ctx, p)
	if err != nil {
		log.Error("Posting failed with no HTTP response!", "err", err)
		return nil
	}
	if resp.StatusCode() != 201 {
		log.Error("Post failed!", "status", resp.StatusCode(), "body", resp.String())
		return nil
	}

	for _, member := range p.Images() {
		if err = a.imageRepo.MarkPosted(ctx, member.ID); err != nil {
			return err
		}
	}
	log.Info("Post successfully sent!", "status", resp.StatusCode())
	return nil
}
