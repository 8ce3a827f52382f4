// Package webhook 提供身份提供商 Webhook 签名校验
package webhook

import (
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// Verifier Webhook 签名校验接口
type Verifier interface {
	// Verify 校验载荷签名，失败返回非 nil 错误
	Verify(payload []byte, headers http.Header) error
}

// SvixVerifier 基于 svix 签名方案的校验器
type SvixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier 创建 svix 校验器，secret 为 whsec_ 前缀的签名密钥
func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &SvixVerifier{wh: wh}, nil
}

// Verify 校验载荷签名
func (v *SvixVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
