// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// SubscriptionRepository 订阅（额度台账）仓储接口
type SubscriptionRepository interface {
	// Create 创建订阅
	Create(ctx context.Context, sub *entity.Subscription) error

	// GetByTenant 获取租户的订阅
	GetByTenant(ctx context.Context, tenantID string) (*entity.Subscription, error)

	// Debit 原子扣减额度：单条带条件 UPDATE，超额时影响行数为 0
	// 返回扣减后的剩余额度；ok 为 false 表示扣减会突破 tokens_allocated
	Debit(ctx context.Context, tenantID string, amount int64) (remaining int64, ok bool, err error)

	// ResetPeriod 重置计费周期用量
	ResetPeriod(ctx context.Context, tenantID string, allocated int64) error
}
