// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"docforge-ai-api/internal/domain/entity"
)

// SectionRepository 章节仓储实现
type SectionRepository struct {
	client *Client
}

// NewSectionRepository 创建章节仓储
func NewSectionRepository(client *Client) *SectionRepository {
	return &SectionRepository{client: client}
}

// Create 创建章节
func (r *SectionRepository) Create(ctx context.Context, section *entity.Section) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(section).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *SectionRepository) GetByID(ctx context.Context, id string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var section entity.Section
	if err := db.First(&section, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

// Delete 删除章节
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Section{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}

// ListByDocument 获取文档章节列表
// order_index 升序，创建时间为次序键，保证遍历顺序稳定
func (r *SectionRepository) ListByDocument(ctx context.Context, documentID string) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.ListByDocument")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sections []*entity.Section
	if err := db.Where("document_id = ?", documentID).
		Order("order_index ASC, created_at ASC").
		Find(&sections).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// ListBefore 获取文档中排在指定序号之前的章节
func (r *SectionRepository) ListBefore(ctx context.Context, documentID string, orderIndex int) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.ListBefore")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sections []*entity.Section
	if err := db.Where("document_id = ? AND order_index < ?", documentID, orderIndex).
		Order("order_index ASC, created_at ASC").
		Find(&sections).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list preceding sections: %w", err)
	}
	return sections, nil
}

// UpdateContent 更新章节内容与生成来源标记
func (r *SectionRepository) UpdateContent(ctx context.Context, id, content string, generatedByAI bool) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.UpdateContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Section{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":         content,
		"generated_by_ai": generatedByAI,
	}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update section content: %w", err)
	}
	return nil
}

// UpdateName 更新章节名称
func (r *SectionRepository) UpdateName(ctx context.Context, id, name string) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.UpdateName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Section{}).Where("id = ?", id).Update("name", name).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update section name: %w", err)
	}
	return nil
}

// NextOrderIndex 获取文档的下一个序号
func (r *SectionRepository) NextOrderIndex(ctx context.Context, documentID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.NextOrderIndex")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var maxIndex *int
	err := db.Model(&entity.Section{}).
		Where("document_id = ?", documentID).
		Select("MAX(order_index)").
		Scan(&maxIndex).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get max order index: %w", err)
	}

	if maxIndex == nil {
		return 0, nil
	}
	return *maxIndex + 1, nil
}
