package keyring

import (
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

// 凭据库中的 service 名，和原来手工录入时保持一致
const (
	ServiceMysql  = "mysql"
	ServiceTumblr = "tumblr"
)

// Get 从系统凭据库读取 service/key 对应的密文，密文不落配置文件
func Get(service, key string) (string, error) {
	secret, err := keyring.Get(service, key)
	if err != nil {
		return "", errors.Wrapf(err, "read credential %s/%s", service, key)
	}
	return secret, nil
}
