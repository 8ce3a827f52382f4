// Package entity 定义领域实体
package entity

import (
	"time"
)

// TenantStatus 租户状态
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusDeleted   TenantStatus = "deleted"
)

// Tenant 租户实体（一个公司账号）
// ExternalSubject 为身份提供商侧的主体 ID，一个主体恰好对应一个租户
type Tenant struct {
	ID              string       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalSubject string       `json:"external_subject" gorm:"type:varchar(128);uniqueIndex;not null"`
	Name            string       `json:"name" gorm:"type:varchar(255);not null"`
	About           string       `json:"about,omitempty" gorm:"type:text"`
	WebsiteURL      string       `json:"website_url,omitempty" gorm:"type:varchar(512)"`
	ToneGuidelines  string       `json:"tone_guidelines,omitempty" gorm:"type:text"`
	Status          TenantStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant 创建新租户
func NewTenant(externalSubject, name string) *Tenant {
	now := time.Now()
	return &Tenant{
		ExternalSubject: externalSubject,
		Name:            name,
		Status:          TenantStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsActive 检查租户是否活跃
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
