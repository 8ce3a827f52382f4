// Package template 提供文档模板管理
package template

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

var tracer = otel.Tracer("template")

// Service 模板服务
type Service struct {
	templateRepo repository.TemplateRepository
}

// NewService 创建模板服务
func NewService(templateRepo repository.TemplateRepository) *Service {
	return &Service{templateRepo: templateRepo}
}

// CreateInput 模板创建输入
type CreateInput struct {
	Name          string
	Description   string
	ToneReference string
	Structure     []entity.SectionBlueprint
}

// Create 创建模板，章节结构按序号归一化
func (s *Service) Create(ctx context.Context, tenantID string, in *CreateInput) (*entity.Template, error) {
	ctx, span := tracer.Start(ctx, "template.Service.Create")
	defer span.End()

	tpl := entity.NewTemplate(tenantID, in.Name)
	tpl.Description = in.Description
	tpl.ToneReference = in.ToneReference
	tpl.Structure = normalizeStructure(in.Structure)

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get 获取模板，校验归属
func (s *Service) Get(ctx context.Context, tenantID, templateID string) (*entity.Template, error) {
	ctx, span := tracer.Start(ctx, "template.Service.Get")
	defer span.End()

	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil || tpl.TenantID != tenantID {
		return nil, apperrors.ErrTemplateNotFound
	}
	return tpl, nil
}

// UpdateInput 模板更新输入，nil 字段保持不变
type UpdateInput struct {
	Name          *string
	Description   *string
	ToneReference *string
	Structure     []entity.SectionBlueprint
}

// Update 更新模板
func (s *Service) Update(ctx context.Context, tenantID, templateID string, in *UpdateInput) (*entity.Template, error) {
	ctx, span := tracer.Start(ctx, "template.Service.Update")
	defer span.End()

	tpl, err := s.Get(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		tpl.Name = *in.Name
	}
	if in.Description != nil {
		tpl.Description = *in.Description
	}
	if in.ToneReference != nil {
		tpl.ToneReference = *in.ToneReference
	}
	if in.Structure != nil {
		tpl.Structure = normalizeStructure(in.Structure)
	}

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete 删除模板
func (s *Service) Delete(ctx context.Context, tenantID, templateID string) error {
	ctx, span := tracer.Start(ctx, "template.Service.Delete")
	defer span.End()

	if _, err := s.Get(ctx, tenantID, templateID); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, templateID)
}

// List 获取租户的模板列表
func (s *Service) List(ctx context.Context, tenantID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Template], error) {
	ctx, span := tracer.Start(ctx, "template.Service.List")
	defer span.End()

	return s.templateRepo.ListByTenant(ctx, tenantID, pagination)
}

// normalizeStructure 按序号排序并压实为 0..n-1
func normalizeStructure(blueprints []entity.SectionBlueprint) []entity.SectionBlueprint {
	if len(blueprints) == 0 {
		return nil
	}
	out := make([]entity.SectionBlueprint, len(blueprints))
	copy(out, blueprints)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	for i := range out {
		out[i].OrderIndex = i
	}
	return out
}
