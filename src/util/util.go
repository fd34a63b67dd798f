package util

import (
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// filePath为空时不读取文件，out保持原有（默认）值
// 文件中未出现的字段同样保持原值
func ReadConfig(filePath string, out interface{}) error {
	if filePath == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // for nested structure
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := v.Unmarshal(out); err != nil {
		return err
	}

	return nil
}

// 同时具备scheme与host才视为可访问的绝对地址
func IsValidURL(u string) bool {
	oURL, err := url.Parse(u)
	if err != nil {
		return false
	}
	return oURL.Scheme != "" && oURL.Host != ""
}

// 按RFC 3986将ref解析为相对base的地址
func JoinURL(base string, ref string) (string, error) {
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", err
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}

// host中可能残留有:port信息，需要进一步移除
func GetDomain(u string) (string, error) {
	oURL, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	return oURL.Hostname(), nil
}
