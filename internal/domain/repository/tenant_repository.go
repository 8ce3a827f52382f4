// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// TenantRepository 租户仓储接口
type TenantRepository interface {
	// Create 创建租户
	Create(ctx context.Context, tenant *entity.Tenant) error

	// GetByID 根据 ID 获取租户
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)

	// GetByExternalSubject 根据身份提供商主体 ID 获取租户
	GetByExternalSubject(ctx context.Context, subject string) (*entity.Tenant, error)

	// Update 更新租户
	Update(ctx context.Context, tenant *entity.Tenant) error

	// ExistsByExternalSubject 检查主体 ID 是否已存在
	ExistsByExternalSubject(ctx context.Context, subject string) (bool, error)
}
