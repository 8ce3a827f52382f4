package generation

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
)

// --- 内存假件 ---

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error { f.tenants[t.ID] = t; return nil }
func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.tenants[id], nil
}
func (f *fakeTenantRepo) GetByExternalSubject(_ context.Context, subject string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.ExternalSubject == subject {
			return t, nil
		}
	}
	return nil, nil
}
func (f *fakeTenantRepo) Update(_ context.Context, t *entity.Tenant) error { f.tenants[t.ID] = t; return nil }
func (f *fakeTenantRepo) ExistsByExternalSubject(ctx context.Context, subject string) (bool, error) {
	t, _ := f.GetByExternalSubject(ctx, subject)
	return t != nil, nil
}

type fakeTemplateRepo struct {
	templates map[string]*entity.Template
}

func (f *fakeTemplateRepo) Create(_ context.Context, t *entity.Template) error {
	f.templates[t.ID] = t
	return nil
}
func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (*entity.Template, error) {
	return f.templates[id], nil
}
func (f *fakeTemplateRepo) Update(_ context.Context, t *entity.Template) error {
	f.templates[t.ID] = t
	return nil
}
func (f *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	delete(f.templates, id)
	return nil
}
func (f *fakeTemplateRepo) ListByTenant(_ context.Context, _ string, p repository.Pagination) (*repository.PagedResult[*entity.Template], error) {
	return repository.NewPagedResult[*entity.Template](nil, 0, p), nil
}

type fakeDocumentRepo struct {
	documents map[string]*entity.Document
}

func (f *fakeDocumentRepo) Create(_ context.Context, d *entity.Document) error {
	f.documents[d.ID] = d
	return nil
}
func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return f.documents[id], nil
}
func (f *fakeDocumentRepo) Update(_ context.Context, d *entity.Document) error {
	f.documents[d.ID] = d
	return nil
}
func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	delete(f.documents, id)
	return nil
}
func (f *fakeDocumentRepo) ListByTenant(_ context.Context, _ string, _ *repository.DocumentFilter, p repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	return repository.NewPagedResult[*entity.Document](nil, 0, p), nil
}
func (f *fakeDocumentRepo) UpdateStatus(_ context.Context, id string, status entity.DocumentStatus) error {
	if d, ok := f.documents[id]; ok {
		d.Status = status
	}
	return nil
}

type fakeSectionRepo struct {
	sections         map[string]*entity.Section
	updateContentErr error
}

func (f *fakeSectionRepo) Create(_ context.Context, s *entity.Section) error {
	f.sections[s.ID] = s
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
func (f *fakeSectionRepo) ListBefore(ctx context.Context, documentID string, orderIndex int) ([]*entity.Section, error) {
	all, _ := f.ListByDocument(ctx, documentID)
	var out []*entity.Section
	for _, s := range all {
		if s.OrderIndex < orderIndex {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSectionRepo) UpdateContent(_ context.Context, id, content string, generatedByAI bool) error {
	if f.updateContentErr != nil {
		return f.updateContentErr
	}
	if s, ok := f.sections[id]; ok {
		s.Content = content
		s.GeneratedByAI = generatedByAI
	}
	return nil
}
func (f *fakeSectionRepo) UpdateName(_ context.Context, id, name string) error {
	if s, ok := f.sections[id]; ok {
		s.Name = name
	}
	return nil
}
func (f *fakeSectionRepo) NextOrderIndex(ctx context.Context, documentID string) (int, error) {
	all, _ := f.ListByDocument(ctx, documentID)
	if len(all) == 0 {
		return 0, nil
	}
	return all[len(all)-1].OrderIndex + 1, nil
}

type fakeRecordRepo struct {
	records   []*entity.GenerationRecord
	createErr error
}

func (f *fakeRecordRepo) Create(_ context.Context, r *entity.GenerationRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, r)
	return nil
}
func (f *fakeRecordRepo) ListByTenant(_ context.Context, tenantID string, p repository.Pagination) (*repository.PagedResult[*entity.GenerationRecord], error) {
	var out []*entity.GenerationRecord
	for _, r := range f.records {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return repository.NewPagedResult(out, int64(len(out)), p), nil
}

type fakeLedger struct {
	available bool
	checkErr  error
	debits    []int64
	debitErr  error
	remaining int64
}

func (f *fakeLedger) CheckAvailable(_ context.Context, _ string) (bool, error) {
	return f.available, f.checkErr
}
func (f *fakeLedger) Debit(_ context.Context, _ string, amount int64) (int64, error) {
	if f.debitErr != nil {
		return 0, f.debitErr
	}
	f.debits = append(f.debits, amount)
	return f.remaining, nil
}

type fakeGateway struct {
	content string
	err     error
	system  string
	user    string
	calls   int
}

func (f *fakeGateway) GenerateText(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

// --- 测试夹具 ---

type fixture struct {
	orchestrator *Orchestrator
	tenants      *fakeTenantRepo
	templates    *fakeTemplateRepo
	documents    *fakeDocumentRepo
	sections     *fakeSectionRepo
	records      *fakeRecordRepo
	ledger       *fakeLedger
	gateway      *fakeGateway
}

func newFixture() *fixture {
	f := &fixture{
		tenants:   &fakeTenantRepo{tenants: map[string]*entity.Tenant{}},
		templates: &fakeTemplateRepo{templates: map[string]*entity.Template{}},
		documents: &fakeDocumentRepo{documents: map[string]*entity.Document{}},
		sections:  &fakeSectionRepo{sections: map[string]*entity.Section{}},
		records:   &fakeRecordRepo{},
		ledger:    &fakeLedger{available: true, remaining: 9},
		gateway:   &fakeGateway{content: "Generated body text."},
	}
	f.orchestrator = NewOrchestrator(f.tenants, f.templates, f.documents, f.sections, f.records, f.ledger, f.gateway)

	f.tenants.tenants["t1"] = &entity.Tenant{
		ID:              "t1",
		ExternalSubject: "sub-1",
		Name:            "Acme Robotics",
		About:           "Industrial automation",
		ToneGuidelines:  "Plain and direct",
		Status:          entity.TenantStatusActive,
	}
	f.templates.templates["tpl1"] = &entity.Template{
		ID:       "tpl1",
		TenantID: "t1",
		Name:     "Business Plan",
	}
	f.documents.documents["d1"] = &entity.Document{
		ID:         "d1",
		TenantID:   "t1",
		TemplateID: "tpl1",
		Title:      "Acme 2026 Plan",
		Status:     entity.DocumentStatusDraft,
	}
	f.sections.sections["s0"] = &entity.Section{
		ID:         "s0",
		DocumentID: "d1",
		Name:       "Company Overview",
		Content:    "Founded in 2019.",
		OrderIndex: 0,
	}
	f.sections.sections["s1"] = &entity.Section{
		ID:         "s1",
		DocumentID: "d1",
		Name:       "Executive Summary",
		OrderIndex: 1,
	}
	return f
}

func baseRequest() *Request {
	return &Request{
		TenantID:   "t1",
		DocumentID: "d1",
		SectionID:  "s1",
	}
}

// --- 用例 ---

func TestGenerateSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "Generated body text.", result.Content)
	assert.Equal(t, int64(9), result.TokensRemaining)

	// 内容落库并标记 AI 来源
	section := f.sections.sections["s1"]
	assert.Equal(t, "Generated body text.", section.Content)
	assert.True(t, section.GeneratedByAI)

	// 固定扣一个额度单位
	require.Len(t, f.ledger.debits, 1)
	assert.Equal(t, int64(1), f.ledger.debits[0])

	// 追加了审计记录
	require.Len(t, f.records.records, 1)
	record := f.records.records[0]
	assert.Equal(t, "t1", record.TenantID)
	assert.Equal(t, "d1", record.DocumentID)
	assert.Equal(t, "s1", record.SectionID)
	assert.Equal(t, entity.GenerationTypeSection, record.GenerationType)
	assert.Equal(t, "Section: Executive Summary", record.PromptDescriptor)
}

func TestGeneratePassesPriorSectionsToPrompt(t *testing.T) {
	f := newFixture()

	_, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Contains(t, f.gateway.user, "**Company Overview:**")
	assert.Contains(t, f.gateway.user, "Founded in 2019.")
	assert.Contains(t, f.gateway.system, "Acme Robotics")
	assert.Contains(t, f.gateway.system, "Business Plan")
}

func TestGenerateQuotaExceededNoSideEffects(t *testing.T) {
	f := newFixture()
	f.ledger.available = false

	_, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.Error(t, err)
	assert.True(t, quota.IsQuotaExceeded(err))

	// 无任何副作用
	assert.Equal(t, 0, f.gateway.calls)
	assert.Empty(t, f.ledger.debits)
	assert.Empty(t, f.records.records)
	assert.Empty(t, f.sections.sections["s1"].Content)
}

func TestGenerateProviderFailureNoDebit(t *testing.T) {
	f := newFixture()
	f.gateway.err = apperrors.New(apperrors.CodeProviderError, "provider down")
	f.sections.sections["s1"].Content = "previous content"

	_, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.Error(t, err)

	// 不扣额度、不改写已有内容、不追加审计
	assert.Empty(t, f.ledger.debits)
	assert.Equal(t, "previous content", f.sections.sections["s1"].Content)
	assert.Empty(t, f.records.records)
}

func TestGenerateDebitLostRace(t *testing.T) {
	f := newFixture()
	f.ledger.debitErr = quota.QuotaExceededError{TenantID: "t1"}

	result, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	// 内容保留，剩余额度报 0
	assert.Equal(t, "Generated body text.", result.Content)
	assert.Equal(t, int64(0), result.TokensRemaining)
	assert.Equal(t, "Generated body text.", f.sections.sections["s1"].Content)
}

func TestGenerateDebitSystemErrorFails(t *testing.T) {
	f := newFixture()
	f.ledger.debitErr = errors.New("connection reset")

	_, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.Error(t, err)
	assert.False(t, quota.IsQuotaExceeded(err))
}

func TestGenerateRecordFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	f.records.createErr = errors.New("insert failed")

	result, err := f.orchestrator.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "Generated body text.", result.Content)
}

func TestGenerateNotFound(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *fixture, req *Request)
		want   *apperrors.AppError
	}{
		{"tenant missing", func(f *fixture, req *Request) { req.TenantID = "ghost" }, apperrors.ErrTenantNotFound},
		{"document missing", func(f *fixture, req *Request) { req.DocumentID = "ghost" }, apperrors.ErrDocumentNotFound},
		{"document other tenant", func(f *fixture, req *Request) {
			f.documents.documents["d1"].TenantID = "t2"
		}, apperrors.ErrDocumentNotFound},
		{"section missing", func(f *fixture, req *Request) { req.SectionID = "ghost" }, apperrors.ErrSectionNotFound},
		{"section other document", func(f *fixture, req *Request) {
			f.sections.sections["s1"].DocumentID = "d2"
		}, apperrors.ErrSectionNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := baseRequest()
			tc.mutate(f, req)

			_, err := f.orchestrator.Generate(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, f.ledger.debits)
		})
	}
}

func TestGenerateSectionNameOverride(t *testing.T) {
	f := newFixture()
	req := baseRequest()
	req.SectionName = "Go-To-Market"
	req.CustomInstruction = "Focus on EMEA"

	_, err := f.orchestrator.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, f.gateway.system, `"Go-To-Market"`)
	require.Len(t, f.records.records, 1)
	assert.Equal(t, "Section: Go-To-Market | Custom: Focus on EMEA", f.records.records[0].PromptDescriptor)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "quota_exceeded", statusLabel(quota.QuotaExceededError{}))
	assert.Equal(t, "provider_error", statusLabel(apperrors.New(apperrors.CodeProviderError, "x")))
	assert.Equal(t, "empty_result", statusLabel(apperrors.New(apperrors.CodeEmptyResult, "x")))
	assert.Equal(t, "not_found", statusLabel(apperrors.ErrDocumentNotFound))
	assert.Equal(t, "error", statusLabel(errors.New("boom")))
}
