// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"docforge-ai-api/internal/domain/entity"
)

// SectionRepository 章节仓储接口
type SectionRepository interface {
	// Create 创建章节
	Create(ctx context.Context, section *entity.Section) error

	// GetByID 根据 ID 获取章节
	GetByID(ctx context.Context, id string) (*entity.Section, error)

	// Delete 删除章节
	Delete(ctx context.Context, id string) error

	// ListByDocument 获取文档章节列表（order_index 升序，创建时间为次序键）
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Section, error)

	// ListBefore 获取文档中排在指定序号之前的章节（用于生成上下文）
	ListBefore(ctx context.Context, documentID string, orderIndex int) ([]*entity.Section, error)

	// UpdateContent 更新章节内容与生成来源标记
	UpdateContent(ctx context.Context, id, content string, generatedByAI bool) error

	// UpdateName 更新章节名称
	UpdateName(ctx context.Context, id, name string) error

	// NextOrderIndex 获取文档的下一个序号（max(existing)+1，空文档为 0）
	NextOrderIndex(ctx context.Context, documentID string) (int, error)
}
