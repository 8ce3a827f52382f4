// Package entity 定义领域实体
package entity

import (
	"time"
)

// Section 文档章节实体
// OrderIndex 在同一文档内唯一，决定渲染与导出顺序；内容允许为空
type Section struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentID    string    `json:"document_id" gorm:"type:uuid;index:idx_sections_doc_order,priority:1;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Content       string    `json:"content" gorm:"type:text"`
	OrderIndex    int       `json:"order_index" gorm:"index:idx_sections_doc_order,priority:2;not null"`
	GeneratedByAI bool      `json:"generated_by_ai" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Section) TableName() string {
	return "sections"
}

// NewSection 创建新章节
func NewSection(documentID, name string, orderIndex int) *Section {
	now := time.Now()
	return &Section{
		DocumentID: documentID,
		Name:       name,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetContent 设置章节内容并标记来源
func (s *Section) SetContent(content string, generatedByAI bool) {
	s.Content = content
	s.GeneratedByAI = generatedByAI
	s.UpdatedAt = time.Now()
}
