// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"docforge-ai-api/internal/domain/entity"
)

// GenerateSectionRequest 章节生成请求
type GenerateSectionRequest struct {
	// SectionName 覆盖章节名（为空时使用存储中的名称）
	SectionName string `json:"section_name,omitempty" binding:"max=255"`
	// CustomPrompt 追加的自由指令，原样传递给提示词
	CustomPrompt string `json:"custom_prompt,omitempty" binding:"max=2000"`
}

// GenerateSectionResponse 章节生成响应
type GenerateSectionResponse struct {
	Content         string `json:"content"`
	TokensRemaining int64  `json:"tokens_remaining"`
}

// GenerationRecordResponse 生成审计记录响应
type GenerationRecordResponse struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	SectionID        string    `json:"section_id"`
	TokensConsumed   int64     `json:"tokens_consumed"`
	GenerationType   string    `json:"generation_type"`
	PromptDescriptor string    `json:"prompt_descriptor,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToGenerationRecordResponse 实体转换为响应
func ToGenerationRecordResponse(r *entity.GenerationRecord) *GenerationRecordResponse {
	if r == nil {
		return nil
	}
	return &GenerationRecordResponse{
		ID:               r.ID,
		DocumentID:       r.DocumentID,
		SectionID:        r.SectionID,
		TokensConsumed:   r.TokensConsumed,
		GenerationType:   string(r.GenerationType),
		PromptDescriptor: r.PromptDescriptor,
		CreatedAt:        r.CreatedAt,
	}
}

// ToGenerationRecordResponses 实体列表转换为响应列表
func ToGenerationRecordResponses(records []*entity.GenerationRecord) []*GenerationRecordResponse {
	out := make([]*GenerationRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToGenerationRecordResponse(r))
	}
	return out
}
