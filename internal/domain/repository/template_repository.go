// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	// Create 创建模板
	Create(ctx context.Context, template *entity.Template) error

	// GetByID 根据 ID 获取模板
	GetByID(ctx context.Context, id string) (*entity.Template, error)

	// Update 更新模板
	Update(ctx context.Context, template *entity.Template) error

	// Delete 删除模板
	Delete(ctx context.Context, id string) error

	// ListByTenant 获取租户的模板列表
	ListByTenant(ctx context.Context, tenantID string, pagination Pagination) (*PagedResult[*entity.Template], error)
}
