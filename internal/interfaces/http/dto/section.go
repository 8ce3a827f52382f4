// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"docforge-ai-api/internal/domain/entity"
)

// AppendSectionRequest 追加章节请求
// OrderIndex 省略时自动取 max(existing)+1
type AppendSectionRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	OrderIndex *int   `json:"order_index"`
}

// UpdateSectionRequest 更新章节请求
type UpdateSectionRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// SectionResponse 章节响应
type SectionResponse struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	Name          string    `json:"name"`
	Content       string    `json:"content"`
	OrderIndex    int       `json:"order_index"`
	GeneratedByAI bool      `json:"generated_by_ai"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSectionResponse 实体转换为响应
func ToSectionResponse(s *entity.Section) *SectionResponse {
	if s == nil {
		return nil
	}
	return &SectionResponse{
		ID:            s.ID,
		DocumentID:    s.DocumentID,
		Name:          s.Name,
		Content:       s.Content,
		OrderIndex:    s.OrderIndex,
		GeneratedByAI: s.GeneratedByAI,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSectionResponses 实体列表转换为响应列表
func ToSectionResponses(sections []*entity.Section) []*SectionResponse {
	out := make([]*SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, ToSectionResponse(s))
	}
	return out
}
