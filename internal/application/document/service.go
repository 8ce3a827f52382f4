// Package document 提供文档与章节管理
package document

import (
	"context"

	"go.opentelemetry.io/otel"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

var tracer = otel.Tracer("document")

// Service 文档服务
type Service struct {
	documentRepo repository.DocumentRepository
	templateRepo repository.TemplateRepository
	sectionRepo  repository.SectionRepository
	txManager    repository.Transactor
}

// NewService 创建文档服务
func NewService(
	documentRepo repository.DocumentRepository,
	templateRepo repository.TemplateRepository,
	sectionRepo repository.SectionRepository,
	txManager repository.Transactor,
) *Service {
	return &Service{
		documentRepo: documentRepo,
		templateRepo: templateRepo,
		sectionRepo:  sectionRepo,
		txManager:    txManager,
	}
}

// DocumentWithSections 文档及其有序章节
type DocumentWithSections struct {
	Document *entity.Document  `json:"document"`
	Sections []*entity.Section `json:"sections"`
}

// Create 从模板实例化文档
// 文档与模板结构定义的空章节在同一事务中建立
func (s *Service) Create(ctx context.Context, tenantID, templateID, title string) (*DocumentWithSections, error) {
	ctx, span := tracer.Start(ctx, "document.Service.Create")
	defer span.End()

	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil || tpl.TenantID != tenantID {
		return nil, apperrors.ErrTemplateNotFound
	}

	doc := entity.NewDocument(tenantID, templateID, title)
	sections := make([]*entity.Section, 0, len(tpl.Structure))

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.documentRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, bp := range tpl.Structure {
			section := entity.NewSection(doc.ID, bp.Name, bp.OrderIndex)
			if err := s.sectionRepo.Create(ctx, section); err != nil {
				return err
			}
			sections = append(sections, section)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create document")
	}

	return &DocumentWithSections{Document: doc, Sections: sections}, nil
}

// Get 获取文档及其有序章节，校验归属
func (s *Service) Get(ctx context.Context, tenantID, documentID string) (*DocumentWithSections, error) {
	ctx, span := tracer.Start(ctx, "document.Service.Get")
	defer span.End()

	doc, err := s.getOwned(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &DocumentWithSections{Document: doc, Sections: sections}, nil
}

// UpdateInput 文档更新输入，nil 字段保持不变
type UpdateInput struct {
	Title    *string
	Status   *entity.DocumentStatus
	Metadata *entity.DocumentMetadata
}

// Update 更新文档，状态迁移完全由调用方驱动
func (s *Service) Update(ctx context.Context, tenantID, documentID string, in *UpdateInput) (*entity.Document, error) {
	ctx, span := tracer.Start(ctx, "document.Service.Update")
	defer span.End()

	doc, err := s.getOwned(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		doc.Title = *in.Title
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "invalid document status")
		}
		doc.Status = *in.Status
	}
	if in.Metadata != nil {
		doc.Metadata = in.Metadata
	}

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete 删除文档及其章节
func (s *Service) Delete(ctx context.Context, tenantID, documentID string) error {
	ctx, span := tracer.Start(ctx, "document.Service.Delete")
	defer span.End()

	if _, err := s.getOwned(ctx, tenantID, documentID); err != nil {
		return err
	}

	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		sections, err := s.sectionRepo.ListByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		for _, section := range sections {
			if err := s.sectionRepo.Delete(ctx, section.ID); err != nil {
				return err
			}
		}
		return s.documentRepo.Delete(ctx, documentID)
	})
}

// List 获取租户的文档列表
func (s *Service) List(ctx context.Context, tenantID string, filter *repository.DocumentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	ctx, span := tracer.Start(ctx, "document.Service.List")
	defer span.End()

	return s.documentRepo.ListByTenant(ctx, tenantID, filter, pagination)
}

// AppendSection 追加章节
// orderIndex 为 nil 时取 max(existing)+1，空文档从 0 开始
func (s *Service) AppendSection(ctx context.Context, tenantID, documentID, name string, orderIndex *int) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "document.Service.AppendSection")
	defer span.End()

	if _, err := s.getOwned(ctx, tenantID, documentID); err != nil {
		return nil, err
	}

	idx := 0
	if orderIndex != nil {
		idx = *orderIndex
	} else {
		next, err := s.sectionRepo.NextOrderIndex(ctx, documentID)
		if err != nil {
			return nil, err
		}
		idx = next
	}

	section := entity.NewSection(documentID, name, idx)
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSectionContent 用户直接编辑章节内容，清除 AI 生成标记
func (s *Service) UpdateSectionContent(ctx context.Context, tenantID, documentID, sectionID, content string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "document.Service.UpdateSectionContent")
	defer span.End()

	section, err := s.getOwnedSection(ctx, tenantID, documentID, sectionID)
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.UpdateContent(ctx, sectionID, content, false); err != nil {
		return nil, err
	}
	section.SetContent(content, false)
	return section, nil
}

// RenameSection 重命名章节
func (s *Service) RenameSection(ctx context.Context, tenantID, documentID, sectionID, name string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "document.Service.RenameSection")
	defer span.End()

	section, err := s.getOwnedSection(ctx, tenantID, documentID, sectionID)
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.UpdateName(ctx, sectionID, name); err != nil {
		return nil, err
	}
	section.Name = name
	return section, nil
}

// DeleteSection 删除章节
func (s *Service) DeleteSection(ctx context.Context, tenantID, documentID, sectionID string) error {
	ctx, span := tracer.Start(ctx, "document.Service.DeleteSection")
	defer span.End()

	if _, err := s.getOwnedSection(ctx, tenantID, documentID, sectionID); err != nil {
		return err
	}
	return s.sectionRepo.Delete(ctx, sectionID)
}

// ListSections 获取文档章节列表（order_index 升序）
func (s *Service) ListSections(ctx context.Context, tenantID, documentID string) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "document.Service.ListSections")
	defer span.End()

	if _, err := s.getOwned(ctx, tenantID, documentID); err != nil {
		return nil, err
	}
	return s.sectionRepo.ListByDocument(ctx, documentID)
}

func (s *Service) getOwned(ctx context.Context, tenantID, documentID string) (*entity.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.TenantID != tenantID {
		return nil, apperrors.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *Service) getOwnedSection(ctx context.Context, tenantID, documentID, sectionID string) (*entity.Section, error) {
	if _, err := s.getOwned(ctx, tenantID, documentID); err != nil {
		return nil, err
	}
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil || section.DocumentID != documentID {
		return nil, apperrors.ErrSectionNotFound
	}
	return section, nil
}
