// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"docforge-ai-api/internal/domain/entity"
)

// SubscriptionRepository 订阅（额度台账）仓储实现
type SubscriptionRepository struct {
	client *Client
}

// NewSubscriptionRepository 创建订阅仓储
func NewSubscriptionRepository(client *Client) *SubscriptionRepository {
	return &SubscriptionRepository{client: client}
}

// Create 创建订阅
func (r *SubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(sub).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// GetByTenant 获取租户的订阅
func (r *SubscriptionRepository) GetByTenant(ctx context.Context, tenantID string) (*entity.Subscription, error) {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.GetByTenant")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sub entity.Subscription
	if err := db.First(&sub, "tenant_id = ?", tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// Debit 原子扣减额度
// 单条带条件 UPDATE：tokens_used + amount 超出 tokens_allocated 时影响行数为 0，
// 并发扣减由数据库的行级锁串行化，不依赖应用层的读-改-写
func (r *SubscriptionRepository) Debit(ctx context.Context, tenantID string, amount int64) (int64, bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.Debit")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.Subscription{}).
		Where("tenant_id = ? AND tokens_used + ? <= tokens_allocated", tenantID, amount).
		Updates(map[string]interface{}{
			"tokens_used": gorm.Expr("tokens_used + ?", amount),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return 0, false, fmt.Errorf("failed to debit tokens: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}

	var sub entity.Subscription
	if err := db.Select("tokens_allocated", "tokens_used").
		First(&sub, "tenant_id = ?", tenantID).Error; err != nil {
		span.RecordError(err)
		return 0, true, fmt.Errorf("failed to read remaining tokens: %w", err)
	}
	return sub.TokensRemaining(), true, nil
}

// ResetPeriod 重置计费周期用量
func (r *SubscriptionRepository) ResetPeriod(ctx context.Context, tenantID string, allocated int64) error {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.ResetPeriod")
	defer span.End()

	now := time.Now()
	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Subscription{}).
		Where("tenant_id = ?", tenantID).
		Updates(map[string]interface{}{
			"tokens_allocated":     allocated,
			"tokens_used":          0,
			"billing_period_start": now,
			"billing_period_end":   now.AddDate(0, 1, 0),
			"updated_at":           now,
		}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to reset billing period: %w", err)
	}
	return nil
}
