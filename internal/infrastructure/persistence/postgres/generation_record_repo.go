// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
)

// GenerationRecordRepository 生成审计记录仓储实现
type GenerationRecordRepository struct {
	client *Client
}

// NewGenerationRecordRepository 创建生成审计记录仓储
func NewGenerationRecordRepository(client *Client) *GenerationRecordRepository {
	return &GenerationRecordRepository{client: client}
}

// Create 追加审计记录
func (r *GenerationRecordRepository) Create(ctx context.Context, record *entity.GenerationRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRecordRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(record).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create generation record: %w", err)
	}
	return nil
}

// ListByTenant 获取租户的生成历史（按时间倒序）
func (r *GenerationRecordRepository) ListByTenant(ctx context.Context, tenantID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GenerationRecord], error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRecordRepository.ListByTenant")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.GenerationRecord{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count generation records: %w", err)
	}

	var records []*entity.GenerationRecord
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}

	return repository.NewPagedResult(records, total, pagination), nil
}
