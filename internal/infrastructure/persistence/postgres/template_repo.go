// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
)

// TemplateRepository 模板仓储实现
type TemplateRepository struct {
	client *Client
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(client *Client) *TemplateRepository {
	return &TemplateRepository{client: client}
}

// Create 创建模板
func (r *TemplateRepository) Create(ctx context.Context, template *entity.Template) error {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(template).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取模板
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var template entity.Template
	if err := db.First(&template, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// Update 更新模板
func (r *TemplateRepository) Update(ctx context.Context, template *entity.Template) error {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(template).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

// Delete 删除模板
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Template{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// ListByTenant 获取租户的模板列表
func (r *TemplateRepository) ListByTenant(ctx context.Context, tenantID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Template], error) {
	ctx, span := tracer.Start(ctx, "postgres.TemplateRepository.ListByTenant")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Template{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}

	var templates []*entity.Template
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&templates).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return repository.NewPagedResult(templates, total, pagination), nil
}
