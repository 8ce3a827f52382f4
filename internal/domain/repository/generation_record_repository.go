// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// GenerationRecordRepository 生成审计记录仓储接口
// 只追加：接口刻意不提供更新或删除操作
type GenerationRecordRepository interface {
	// Create 追加审计记录
	Create(ctx context.Context, record *entity.GenerationRecord) error

	// ListByTenant 获取租户的生成历史（按时间倒序）
	ListByTenant(ctx context.Context, tenantID string, pagination Pagination) (*PagedResult[*entity.GenerationRecord], error)
}
