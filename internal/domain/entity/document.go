// Package entity 定义领域实体
package entity

import (
	"time"
)

// DocumentStatus 文档状态，状态迁移完全由调用方驱动
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusCompleted DocumentStatus = "completed"
	DocumentStatusArchived  DocumentStatus = "archived"
)

// DocumentMetadata 文档元数据（带 schema 版本的结构化形式）
type DocumentMetadata struct {
	SchemaVersion int               `json:"schema_version"`
	Author        string            `json:"author,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
}

// Document 文档实体，由模板实例化而来
type Document struct {
	ID         string            `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   string            `json:"tenant_id" gorm:"type:uuid;index;not null"`
	TemplateID string            `json:"template_id" gorm:"type:uuid;index;not null"`
	Title      string            `json:"title" gorm:"type:varchar(255);not null"`
	Status     DocumentStatus    `json:"status" gorm:"type:varchar(50);default:'draft'"`
	Metadata   *DocumentMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}

// NewDocument 创建新文档
func NewDocument(tenantID, templateID, title string) *Document {
	now := time.Now()
	return &Document{
		TenantID:   tenantID,
		TemplateID: templateID,
		Title:      title,
		Status:     DocumentStatusDraft,
		Metadata:   &DocumentMetadata{SchemaVersion: 1},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ValidStatus 检查状态取值是否合法
func ValidStatus(s DocumentStatus) bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusCompleted, DocumentStatusArchived:
		return true
	}
	return false
}
