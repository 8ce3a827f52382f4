// Package dto 提供 HTTP 层数据传输对象
package dto

// IdentityWebhookEvent 身份提供商 Webhook 事件
// 只消费 user.created；其余事件类型确认收到后忽略
type IdentityWebhookEvent struct {
	Type string                   `json:"type"`
	Data IdentityWebhookEventData `json:"data"`
}

// IdentityWebhookEventData 事件数据体
type IdentityWebhookEventData struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	EmailAddresses []WebhookEmailAddress  `json:"email_addresses"`
	PublicMetadata map[string]interface{} `json:"public_metadata,omitempty"`
}

// WebhookEmailAddress 邮箱地址条目
type WebhookEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// DisplayName 推导租户显示名：姓名优先，否则回退到邮箱
func (d *IdentityWebhookEventData) DisplayName() string {
	name := d.FirstName
	if d.LastName != "" {
		if name != "" {
			name += " "
		}
		name += d.LastName
	}
	if name == "" && len(d.EmailAddresses) > 0 {
		name = d.EmailAddresses[0].EmailAddress
	}
	if name == "" {
		name = d.ID
	}
	return name
}

// WebhookAckResponse Webhook 确认响应
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	TenantID string `json:"tenant_id,omitempty"`
}
