// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"docforge-ai-api/internal/domain/entity"
)

// SectionBlueprintDTO 模板章节块
type SectionBlueprintDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name          string                `json:"name" binding:"required,max=255"`
	Description   string                `json:"description"`
	ToneReference string                `json:"tone_reference"`
	Structure     []SectionBlueprintDTO `json:"structure"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	ToneReference *string               `json:"tone_reference"`
	Structure     []SectionBlueprintDTO `json:"structure"`
}

// TemplateResponse 模板响应
type TemplateResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	ToneReference string                `json:"tone_reference,omitempty"`
	Structure     []SectionBlueprintDTO `json:"structure,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToBlueprints DTO 转换为实体结构
func ToBlueprints(in []SectionBlueprintDTO) []entity.SectionBlueprint {
	if in == nil {
		return nil
	}
	out := make([]entity.SectionBlueprint, 0, len(in))
	for _, bp := range in {
		out = append(out, entity.SectionBlueprint{
			Name:        bp.Name,
			Description: bp.Description,
			OrderIndex:  bp.OrderIndex,
		})
	}
	return out
}

// ToTemplateResponse 实体转换为响应
func ToTemplateResponse(t *entity.Template) *TemplateResponse {
	if t == nil {
		return nil
	}
	structure := make([]SectionBlueprintDTO, 0, len(t.Structure))
	for _, bp := range t.Structure {
		structure = append(structure, SectionBlueprintDTO{
			Name:        bp.Name,
			Description: bp.Description,
			OrderIndex:  bp.OrderIndex,
		})
	}
	return &TemplateResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		ToneReference: t.ToneReference,
		Structure:     structure,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTemplateResponses 实体列表转换为响应列表
func ToTemplateResponses(templates []*entity.Template) []*TemplateResponse {
	out := make([]*TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, ToTemplateResponse(t))
	}
	return out
}
