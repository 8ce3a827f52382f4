package generation

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
)

// History 生成历史查询服务
type History struct {
	recordRepo repository.GenerationRecordRepository
}

// NewHistory 创建生成历史查询服务
func NewHistory(recordRepo repository.GenerationRecordRepository) *History {
	return &History{recordRepo: recordRepo}
}

// ListByTenant 获取租户的生成历史（按时间倒序）
func (h *History) ListByTenant(ctx context.Context, tenantID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GenerationRecord], error) {
	ctx, span := tracer.Start(ctx, "generation.History.ListByTenant")
	defer span.End()

	return h.recordRepo.ListByTenant(ctx, tenantID, pagination)
}
