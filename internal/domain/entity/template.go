// Package entity 定义领域实体
package entity

import (
	"time"
)

// SectionBlueprint 模板中一个章节块的结构定义
type SectionBlueprint struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
}

// Template 文档模板实体，归属于单个租户
type Template struct {
	ID            string             `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      string             `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Name          string             `json:"name" gorm:"type:varchar(255);not null"`
	Description   string             `json:"description,omitempty" gorm:"type:text"`
	ToneReference string             `json:"tone_reference,omitempty" gorm:"type:text"`
	Structure     []SectionBlueprint `json:"structure,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}

// NewTemplate 创建新模板
func NewTemplate(tenantID, name string) *Template {
	now := time.Now()
	return &Template{
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
