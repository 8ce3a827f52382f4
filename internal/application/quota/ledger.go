// Package quota 提供租户生成额度相关能力
package quota

import (
	"context"
	"fmt"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/metrics"
)

// QuotaExceededError 表示租户生成额度已耗尽
type QuotaExceededError struct {
	TenantID  string
	Allocated int64
	Used      int64
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: tenant=%s used=%d allocated=%d", e.TenantID, e.Used, e.Allocated)
}

// Snapshot 额度快照（只读）
type Snapshot struct {
	Allocated int64 `json:"allocated"`
	Used      int64 `json:"used"`
	Remaining int64 `json:"remaining"`
}

// Ledger 额度台账服务
// 检查是纯读操作；扣减由仓储层的单条带条件 UPDATE 保证原子性，
// 并发扣减不可能使 tokens_used 超过 tokens_allocated
type Ledger struct {
	subRepo repository.SubscriptionRepository
}

// NewLedger 创建额度台账服务
func NewLedger(subRepo repository.SubscriptionRepository) *Ledger {
	return &Ledger{subRepo: subRepo}
}

// CheckAvailable 检查租户是否还有可用额度，纯读，无副作用
func (l *Ledger) CheckAvailable(ctx context.Context, tenantID string) (bool, error) {
	sub, err := l.subRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, apperrors.ErrSubscriptionNotFound
	}
	return sub.HasAvailableTokens(), nil
}

// GetSnapshot 获取租户额度快照
func (l *Ledger) GetSnapshot(ctx context.Context, tenantID string) (*Snapshot, error) {
	sub, err := l.subRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	return &Snapshot{
		Allocated: sub.TokensAllocated,
		Used:      sub.TokensUsed,
		Remaining: sub.TokensRemaining(),
	}, nil
}

// Debit 原子扣减额度，返回扣减后的剩余额度
// 超额时返回 QuotaExceededError，台账保持不变
func (l *Ledger) Debit(ctx context.Context, tenantID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidParam, "debit amount must be positive")
	}

	remaining, ok, err := l.subRepo.Debit(ctx, tenantID, amount)
	if err != nil {
		metrics.QuotaDebitsTotal.WithLabelValues(tenantID, "error").Inc()
		return 0, err
	}
	if !ok {
		metrics.QuotaDebitsTotal.WithLabelValues(tenantID, "exceeded").Inc()
		metrics.QuotaExceededTotal.WithLabelValues(tenantID).Inc()

		sub, getErr := l.subRepo.GetByTenant(ctx, tenantID)
		if getErr != nil || sub == nil {
			return 0, QuotaExceededError{TenantID: tenantID}
		}
		return 0, QuotaExceededError{
			TenantID:  tenantID,
			Allocated: sub.TokensAllocated,
			Used:      sub.TokensUsed,
		}
	}

	metrics.QuotaDebitsTotal.WithLabelValues(tenantID, "ok").Inc()
	return remaining, nil
}

// Provision 为新租户建立默认台账
func (l *Ledger) Provision(ctx context.Context, tenantID, planName string, allocated int64) (*entity.Subscription, error) {
	sub := entity.NewSubscription(tenantID, planName, allocated)
	if err := l.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// IsQuotaExceeded 检查错误是否为额度耗尽
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(QuotaExceededError)
	return ok
}
