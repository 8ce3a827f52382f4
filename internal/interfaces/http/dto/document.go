// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"docforge-ai-api/internal/application/document"
	"docforge-ai-api/internal/domain/entity"
)

// CreateDocumentRequest 创建文档请求
type CreateDocumentRequest struct {
	TemplateID string `json:"template_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required,max=255"`
}

// UpdateDocumentRequest 更新文档请求
type UpdateDocumentRequest struct {
	Title    *string                  `json:"title"`
	Status   *entity.DocumentStatus   `json:"status"`
	Metadata *entity.DocumentMetadata `json:"metadata"`
}

// DocumentResponse 文档响应
type DocumentResponse struct {
	ID         string                   `json:"id"`
	TemplateID string                   `json:"template_id"`
	Title      string                   `json:"title"`
	Status     entity.DocumentStatus    `json:"status"`
	Metadata   *entity.DocumentMetadata `json:"metadata,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// DocumentDetailResponse 文档详情响应（含有序章节）
type DocumentDetailResponse struct {
	Document *DocumentResponse  `json:"document"`
	Sections []*SectionResponse `json:"sections"`
}

// ToDocumentResponse 实体转换为响应
func ToDocumentResponse(d *entity.Document) *DocumentResponse {
	if d == nil {
		return nil
	}
	return &DocumentResponse{
		ID:         d.ID,
		TemplateID: d.TemplateID,
		Title:      d.Title,
		Status:     d.Status,
		Metadata:   d.Metadata,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDocumentResponses 实体列表转换为响应列表
func ToDocumentResponses(documents []*entity.Document) []*DocumentResponse {
	out := make([]*DocumentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}

// ToDocumentDetailResponse 文档详情转换为响应
func ToDocumentDetailResponse(d *document.DocumentWithSections) *DocumentDetailResponse {
	if d == nil {
		return nil
	}
	return &DocumentDetailResponse{
		Document: ToDocumentResponse(d.Document),
		Sections: ToSectionResponses(d.Sections),
	}
}
