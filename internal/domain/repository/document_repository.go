// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// DocumentFilter 文档过滤条件
type DocumentFilter struct {
	TemplateID string
	Status     entity.DocumentStatus
}

// DocumentRepository 文档仓储接口
type DocumentRepository interface {
	// Create 创建文档
	Create(ctx context.Context, document *entity.Document) error

	// GetByID 根据 ID 获取文档
	GetByID(ctx context.Context, id string) (*entity.Document, error)

	// Update 更新文档
	Update(ctx context.Context, document *entity.Document) error

	// Delete 删除文档
	Delete(ctx context.Context, id string) error

	// ListByTenant 获取租户的文档列表
	ListByTenant(ctx context.Context, tenantID string, filter *DocumentFilter, pagination Pagination) (*PagedResult[*entity.Document], error)

	// UpdateStatus 更新文档状态
	UpdateStatus(ctx context.Context, id string, status entity.DocumentStatus) error
}
