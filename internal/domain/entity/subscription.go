// Package entity 定义领域实体
package entity

import (
	"time"
)

// SubscriptionStatus 订阅状态
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription 订阅实体，同时承担租户的生成额度台账
// 不变式：0 <= TokensUsed <= TokensAllocated，在扣减前由单条带条件 UPDATE 保证
type Subscription struct {
	ID                 string             `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID           string             `json:"tenant_id" gorm:"type:uuid;uniqueIndex;not null"`
	PlanName           string             `json:"plan_name" gorm:"type:varchar(64);not null"`
	TokensAllocated    int64              `json:"tokens_allocated" gorm:"not null;default:0"`
	TokensUsed         int64              `json:"tokens_used" gorm:"not null;default:0"`
	Status             SubscriptionStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	BillingPeriodStart time.Time          `json:"billing_period_start"`
	BillingPeriodEnd   time.Time          `json:"billing_period_end"`
	CreatedAt          time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription 创建新订阅（默认按月计费周期）
func NewSubscription(tenantID, planName string, allocated int64) *Subscription {
	now := time.Now()
	return &Subscription{
		TenantID:           tenantID,
		PlanName:           planName,
		TokensAllocated:    allocated,
		TokensUsed:         0,
		Status:             SubscriptionStatusActive,
		BillingPeriodStart: now,
		BillingPeriodEnd:   now.AddDate(0, 1, 0),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TokensRemaining 剩余额度
func (s *Subscription) TokensRemaining() int64 {
	remaining := s.TokensAllocated - s.TokensUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasAvailableTokens 是否还有可用额度
func (s *Subscription) HasAvailableTokens() bool {
	return s.TokensUsed < s.TokensAllocated
}
