package model

import (
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// Token OAuth2 令牌快照，对应 tokens 表。刷新后插入新行，旧行不覆盖
type Token struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Token     []byte    `gorm:"type:blob;not null" json:"-"`
	ExpiresOn time.Time `gorm:"not null" json:"expires_on"`
}

func (Token) TableName() string {
	return "tokens"
}

// NewToken 把 oauth2 令牌编码成待插入的快照行
func NewToken(tok *oauth2.Token) (*Token, error) {
	blob, err := json.Marshal(tok)
	if err != nil {
		return nil, err
	}
	return &Token{
		Token:     blob,
		ExpiresOn: tok.Expiry.UTC(),
	}, nil
}

// Decode 还原快照里的 oauth2 令牌
func (t *Token) Decode() (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := json.Unmarshal(t.Token, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
