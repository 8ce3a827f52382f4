package document

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

type fakeDocumentRepo struct {
	docs map[string]*entity.Document
	seq  int
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		f.seq++
		doc.ID = string(rune('0' + f.seq))
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return f.docs[id], nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) ListByTenant(_ context.Context, tenantID string, filter *repository.DocumentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	var items []*entity.Document
	for _, doc := range f.docs {
		if doc.TenantID != tenantID {
			continue
		}
		if filter != nil && filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		if filter != nil && filter.TemplateID != "" && doc.TemplateID != filter.TemplateID {
			continue
		}
		items = append(items, doc)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (f *fakeDocumentRepo) UpdateStatus(_ context.Context, id string, status entity.DocumentStatus) error {
	if doc := f.docs[id]; doc != nil {
		doc.Status = status
	}
	return nil
}

type fakeTemplateRepo struct {
	templates map[string]*entity.Template
}

func (f *fakeTemplateRepo) Create(_ context.Context, tpl *entity.Template) error {
	f.templates[tpl.ID] = tpl
	return nil
}
func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (*entity.Template, error) {
	return f.templates[id], nil
}
func (f *fakeTemplateRepo) Update(_ context.Context, tpl *entity.Template) error { return nil }
func (f *fakeTemplateRepo) Delete(_ context.Context, id string) error            { return nil }
func (f *fakeTemplateRepo) ListByTenant(_ context.Context, _ string, pagination repository.Pagination) (*repository.PagedResult[*entity.Template], error) {
	return repository.NewPagedResult[*entity.Template](nil, 0, pagination), nil
}

type fakeSectionRepo struct {
	sections map[string]*entity.Section
	seq      int
}

func (f *fakeSectionRepo) Create(_ context.Context, section *entity.Section) error {
	if section.ID == "" {
		f.seq++
		section.ID = "s" + string(rune('0'+f.seq))
	}
	f.sections[section.ID] = section
	return nil
}

func (f *fakeSectionRepo) GetByID(_ context.Context, id string) (*entity.Section, error) {
	return f.sections[id], nil
}

func (f *fakeSectionRepo) Delete(_ context.Context, id string) error {
	delete(f.sections, id)
	return nil
}

func (f *fakeSectionRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Section, error) {
	var out []*entity.Section
	for _, s := range f.sections {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeSectionRepo) ListBefore(_ context.Context, documentID string, orderIndex int) ([]*entity.Section, error) {
	all, _ := f.ListByDocument(context.Background(), documentID)
	var out []*entity.Section
	for _, s := range all {
		if s.OrderIndex < orderIndex {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSectionRepo) UpdateContent(_ context.Context, id, content string, generatedByAI bool) error {
	if s := f.sections[id]; s != nil {
		s.SetContent(content, generatedByAI)
	}
	return nil
}

func (f *fakeSectionRepo) UpdateName(_ context.Context, id, name string) error {
	if s := f.sections[id]; s != nil {
		s.Name = name
	}
	return nil
}

func (f *fakeSectionRepo) NextOrderIndex(_ context.Context, documentID string) (int, error) {
	next := 0
	for _, s := range f.sections {
		if s.DocumentID == documentID && s.OrderIndex >= next {
			next = s.OrderIndex + 1
		}
	}
	return next, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc         *Service
	docRepo     *fakeDocumentRepo
	sectionRepo *fakeSectionRepo
}

func newFixture() *fixture {
	docRepo := &fakeDocumentRepo{docs: map[string]*entity.Document{}}
	tplRepo := &fakeTemplateRepo{templates: map[string]*entity.Template{
		"tpl1": {
			ID:       "tpl1",
			TenantID: "t1",
			Name:     "Business Plan",
			Structure: []entity.SectionBlueprint{
				{Name: "Executive Summary", OrderIndex: 0},
				{Name: "Market Analysis", OrderIndex: 1},
				{Name: "Financials", OrderIndex: 2},
			},
		},
	}}
	sectionRepo := &fakeSectionRepo{sections: map[string]*entity.Section{}}
	return &fixture{
		svc:         NewService(docRepo, tplRepo, sectionRepo, passthroughTx{}),
		docRepo:     docRepo,
		sectionRepo: sectionRepo,
	}
}

func TestCreateInstantiatesTemplateStructure(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Create(context.Background(), "t1", "tpl1", "Acme 2026 Plan")
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "Acme 2026 Plan", doc.Title)
	assert.Equal(t, entity.DocumentStatusDraft, doc.Status)
	assert.Equal(t, "tpl1", doc.TemplateID)

	require.Len(t, result.Sections, 3)
	assert.Equal(t, "Executive Summary", result.Sections[0].Name)
	assert.Equal(t, 0, result.Sections[0].OrderIndex)
	assert.Equal(t, "Financials", result.Sections[2].Name)
	for _, s := range result.Sections {
		assert.Empty(t, s.Content)
		assert.False(t, s.GeneratedByAI)
		assert.Equal(t, doc.ID, s.DocumentID)
	}
}

func TestCreateTemplateOwnershipEnforced(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "t2", "tpl1", "Stolen")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)

	_, err = f.svc.Create(context.Background(), "t1", "missing", "Bad ref")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

func TestGetReturnsOrderedSections(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), "t1", created.Document.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 3)
	for i, s := range got.Sections {
		assert.Equal(t, i, s.OrderIndex)
	}

	_, err = f.svc.Get(context.Background(), "t2", created.Document.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)

	completed := entity.DocumentStatusCompleted
	doc, err := f.svc.Update(context.Background(), "t1", created.Document.ID, &UpdateInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusCompleted, doc.Status)

	bogus := entity.DocumentStatus("shredded")
	_, err = f.svc.Update(context.Background(), "t1", created.Document.ID, &UpdateInput{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
}

func TestDeleteRemovesSections(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), "t1", created.Document.ID))
	assert.Empty(t, f.docRepo.docs)
	assert.Empty(t, f.sectionRepo.sections)
}

func TestAppendSectionDefaultsToNextOrderIndex(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)
	docID := created.Document.ID

	section, err := f.svc.AppendSection(context.Background(), "t1", docID, "Appendix", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, section.OrderIndex)

	idx := 7
	section, err = f.svc.AppendSection(context.Background(), "t1", docID, "Risks", &idx)
	require.NoError(t, err)
	assert.Equal(t, 7, section.OrderIndex)

	// 再次缺省追加：max+1
	section, err = f.svc.AppendSection(context.Background(), "t1", docID, "Glossary", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, section.OrderIndex)
}

func TestAppendSectionEmptyDocumentStartsAtZero(t *testing.T) {
	f := newFixture()
	f.docRepo.docs["d9"] = &entity.Document{ID: "d9", TenantID: "t1", Title: "Blank"}

	section, err := f.svc.AppendSection(context.Background(), "t1", "d9", "Intro", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, section.OrderIndex)
}

func TestUpdateSectionContentClearsAIFlag(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)
	target := created.Sections[0]
	target.SetContent("machine draft", true)

	section, err := f.svc.UpdateSectionContent(context.Background(), "t1", created.Document.ID, target.ID, "hand-edited text")
	require.NoError(t, err)
	assert.Equal(t, "hand-edited text", section.Content)
	assert.False(t, section.GeneratedByAI)
	assert.False(t, f.sectionRepo.sections[target.ID].GeneratedByAI)
}

func TestSectionOwnershipEnforced(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)
	other, err := f.svc.Create(context.Background(), "t1", "tpl1", "Other Plan")
	require.NoError(t, err)

	// 章节属于另一个文档
	_, err = f.svc.UpdateSectionContent(context.Background(), "t1", created.Document.ID, other.Sections[0].ID, "x")
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)

	// 文档属于另一个租户
	err = f.svc.DeleteSection(context.Background(), "t2", created.Document.ID, created.Sections[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestRenameSection(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan")
	require.NoError(t, err)
	target := created.Sections[1]

	section, err := f.svc.RenameSection(context.Background(), "t1", created.Document.ID, target.ID, "Competitive Landscape")
	require.NoError(t, err)
	assert.Equal(t, "Competitive Landscape", section.Name)
	assert.Equal(t, "Competitive Landscape", f.sectionRepo.sections[target.ID].Name)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newFixture()

	first, err := f.svc.Create(context.Background(), "t1", "tpl1", "Plan A")
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), "t1", "tpl1", "Plan B")
	require.NoError(t, err)

	completed := entity.DocumentStatusCompleted
	_, err = f.svc.Update(context.Background(), "t1", first.Document.ID, &UpdateInput{Status: &completed})
	require.NoError(t, err)

	result, err := f.svc.List(context.Background(), "t1", &repository.DocumentFilter{Status: entity.DocumentStatusCompleted}, repository.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Plan A", result.Items[0].Title)
}
