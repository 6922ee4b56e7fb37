package post

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/pkg/consts"
	"errors"
	"strings"
)

var (
	ErrNoImages     = errors.New("no images to post")
	ErrMixedOrigins = errors.New("images must be from the same CD and directory")
)

// Post 一次发帖尝试的聚合，不落库，提交后即丢弃
type Post struct {
	images []*model.ClipartImage
	tags   []string

	Title        string
	Caption      string
	Attribution  string
	PublishState string
	SourceURL    string
}

// New 单图构造
func New(cfg *config.TumblrConfig, img *model.ClipartImage) (*Post, error) {
	return NewFromImages(cfg, []*model.ClipartImage{img})
}

// NewFromImages 多图构造，构造即校验
func NewFromImages(cfg *config.TumblrConfig, imgs []*model.ClipartImage) (*Post, error) {
	state := cfg.PublishState
	if state == "" {
		state = consts.PublishStateDefault
	}

	p := &Post{
		images:       append([]*model.ClipartImage{}, imgs...),
		tags:         append([]string{}, cfg.StandardTags...),
		Attribution:  cfg.Attribution,
		PublishState: state,
		SourceURL:    cfg.SourceURL,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// AddImage 追加后重新校验；校验不过就把刚加的弹出去，Post 保持原样
func (p *Post) AddImage(img *model.ClipartImage) error {
	p.images = append(p.images, img)
	if err := p.validate(); err != nil {
		p.images = p.images[:len(p.images)-1]
		return err
	}
	return nil
}

func (p *Post) Images() []*model.ClipartImage {
	return p.images
}

// AddTags 把操作者输入的逗号分隔标签拼到标准标签后面
func (p *Post) AddTags(input string) {
	for _, tag := range strings.Split(input, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			p.tags = append(p.tags, tag)
		}
	}
}

// TagString 平台要的是单个逗号串
func (p *Post) TagString() string {
	return strings.Join(p.tags, ",")
}

// validate 同盘同目录约束，多图帖必须来自同一来源
func (p *Post) validate() error {
	if len(p.images) == 0 {
		return ErrNoImages
	}
	first := p.images[0]
	for _, img := range p.images[1:] {
		if img.OriginCD != first.OriginCD || img.Subdirectories != first.Subdirectories {
			return ErrMixedOrigins
		}
	}
	return nil
}
