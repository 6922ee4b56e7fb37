package service

import (
	"errors"
)

var (
	ErrNoFreshImages        = errors.New("没有可发布的图片了")
	ErrImageNotFound        = errors.New("图片记录不存在")
	ErrNoSession            = errors.New("会话未认证，拒绝提交")
	ErrAlreadyAuthenticated = errors.New("会话已认证，无需重新授权")
	ErrAuthFailed           = errors.New("授权失败，请重新发起")
)
