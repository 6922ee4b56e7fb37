package service

import (
	"Clipvault/internal/config"
	"Clipvault/internal/model"
	"Clipvault/internal/post"
	"Clipvault/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticated
	StatePosting
)

type SessionService interface {
	State() SessionState
	TryResumeSession(ctx context.Context) (bool, error)
	BeginAuthorization() (string, error)
	CompleteAuthorization(ctx context.Context, redirectResponse string) error
	Submit(ctx context.Context, p *post.Post) (*resty.Response, error)
}

type sessionServiceImpl struct {
	tokenRepo repository.TokenRepo
	oauth     *oauth2.Config
	client    *resty.Client
	baseDir   string
	postURL   string
	state     SessionState
	authState string
}

func NewSessionService(cfg *config.TumblrConfig, baseDir string, tokenRepo repository.TokenRepo, clientID, clientSecret string) SessionService {
	return &sessionServiceImpl{
		tokenRepo: tokenRepo,
		baseDir:   baseDir,
		postURL:   strings.Replace(cfg.PostURL, "{blogname}", cfg.Blogname, 1),
		state:     StateUnauthenticated,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"basic", "write", "offline_access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
	}
}

func (s *sessionServiceImpl) State() SessionState {
	return s.state
}

// TryResumeSession 尝试用库里最新的令牌恢复会话；没有令牌时保持未认证并返回 false
func (s *sessionServiceImpl) TryResumeSession(ctx context.Context) (bool, error) {
	row, err := s.tokenRepo.Latest(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info("No token found; need to authenticate")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tok, err := row.Decode()
	if err != nil {
		return false, err
	}

	log.Info("Token found; no need to authenticate", "expires_on", row.ExpiresOn)
	s.activate(ctx, tok)
	return true, nil
}

// BeginAuthorization 开启授权码流程，返回操作者要访问的授权链接
func (s *sessionServiceImpl) BeginAuthorization() (string, error) {
	if s.state != StateUnauthenticated {
		return "", ErrAlreadyAuthenticated
	}
	s.authState = uuid.NewString()
	return s.oauth.AuthCodeURL(s.authState), nil
}

// CompleteAuthorization 用操作者粘贴的重定向地址换令牌；失败时停留在未认证
func (s *sessionServiceImpl) CompleteAuthorization(ctx context.Context, redirectResponse string) error {
	u, err := url.Parse(strings.TrimSpace(redirectResponse))
	if err != nil {
		return ErrAuthFailed
	}

	query := u.Query()
	code := query.Get("code")
	if code == "" {
		return ErrAuthFailed
	}
	if state := query.Get("state"); state != "" && state != s.authState {
		return ErrAuthFailed
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		log.Error("token exchange failed", "err", err)
		return ErrAuthFailed
	}

	if err = s.persist(ctx, tok); err != nil {
		return err
	}
	s.activate(ctx, tok)
	return nil
}

// Submit 序列化并提交帖子，原样返回响应让调用方判定。无会话时快速失败，不发请求
func (s *sessionServiceImpl) Submit(ctx context.Context, p *post.Post) (*resty.Response, error) {
	if s.state == StateUnauthenticated || s.client == nil {
		log.Error("submit rejected: no authenticated session")
		return nil, ErrNoSession
	}

	parts, err := p.Multipart(s.baseDir)
	if err != nil {
		return nil, err
	}

	fields := make([]*resty.MultipartField, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, &resty.MultipartField{
			Param:       part.Name,
			FileName:    part.FileName,
			ContentType: part.ContentType,
			Reader:      part.Reader,
		})
	}

	s.state = StatePosting
	defer func() { s.state = StateAuthenticated }()

	return s.client.R().
		SetContext(ctx).
		SetMultipartFields(fields...).
		Post(s.postURL)
}

// activate 挂上自动刷新的 http 客户端，刷新出的新令牌会作为新行插入
func (s *sessionServiceImpl) activate(ctx context.Context, tok *oauth2.Token) {
	src := &persistingTokenSource{
		ctx:      ctx,
		repo:     s.tokenRepo,
		src:      s.oauth.TokenSource(ctx, tok),
		lastSeen: tok.AccessToken,
	}
	s.client = resty.NewWithClient(oauth2.NewClient(ctx, src))
	s.state = StateAuthenticated
}

func (s *sessionServiceImpl) persist(ctx context.Context, tok *oauth2.Token) error {
	row, err := model.NewToken(tok)
	if err != nil {
		return err
	}
	return s.tokenRepo.Insert(ctx, row)
}

// persistingTokenSource 刷新回调：底层拿到新令牌就追加一行快照，旧行不删
type persistingTokenSource struct {
	ctx      context.Context
	repo     repository.TokenRepo
	src      oauth2.TokenSource
	lastSeen string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	if tok.AccessToken != s.lastSeen {
		s.lastSeen = tok.AccessToken
		row, mErr := model.NewToken(tok)
		if mErr != nil {
			log.Error("failed to encode refreshed token", "err", mErr)
			return tok, nil
		}
		if iErr := s.repo.Insert(s.ctx, row); iErr != nil {
			log.Error("failed to persist refreshed token", "err", iErr)
		}
	}
	return tok, nil
}
