// Package entity 定义领域实体
package entity

import "time"

// GenerationType 生成类型
type GenerationType string

const (
	GenerationTypeSection GenerationType = "section"
)

// GenerationRecord 生成审计记录，只追加，从不修改或删除
// 对文档/章节仅为弱引用，只用于报表
type GenerationRecord struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID         string         `json:"tenant_id" gorm:"type:uuid;index;not null"`
	DocumentID       string         `json:"document_id" gorm:"type:uuid;index;not null"`
	SectionID        string         `json:"section_id" gorm:"type:uuid;not null"`
	TokensConsumed   int64          `json:"tokens_consumed" gorm:"not null;default:0"`
	GenerationType   GenerationType `json:"generation_type" gorm:"type:varchar(32);not null"`
	PromptDescriptor string         `json:"prompt_descriptor" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (GenerationRecord) TableName() string {
	return "generation_records"
}
