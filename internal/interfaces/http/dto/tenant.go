// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/domain/entity"
)

// TenantResponse 租户档案响应
type TenantResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	About          string              `json:"about,omitempty"`
	WebsiteURL     string              `json:"website_url,omitempty"`
	ToneGuidelines string              `json:"tone_guidelines,omitempty"`
	Status         entity.TenantStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// UpdateTenantRequest 更新租户档案请求
type UpdateTenantRequest struct {
	Name           *string `json:"name"`
	About          *string `json:"about"`
	WebsiteURL     *string `json:"website_url"`
	ToneGuidelines *string `json:"tone_guidelines"`
}

// QuotaResponse 额度快照响应
type QuotaResponse struct {
	Allocated int64 `json:"tokens_allocated"`
	Used      int64 `json:"tokens_used"`
	Remaining int64 `json:"tokens_remaining"`
}

// ToTenantResponse 实体转换为响应
func ToTenantResponse(t *entity.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}
	return &TenantResponse{
		ID:             t.ID,
		Name:           t.Name,
		About:          t.About,
		WebsiteURL:     t.WebsiteURL,
		ToneGuidelines: t.ToneGuidelines,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToQuotaResponse 额度快照转换为响应
func ToQuotaResponse(s *quota.Snapshot) *QuotaResponse {
	if s == nil {
		return nil
	}
	return &QuotaResponse{
		Allocated: s.Allocated,
		Used:      s.Used,
		Remaining: s.Remaining,
	}
}
