// Package generation 提供章节生成编排
package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docforge-ai-api/internal/application/compose"
	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// debitPerGeneration 一次生成固定记一个额度单位
const debitPerGeneration = 1

// QuotaLedger 定义编排器对额度台账的最小依赖（port）
type QuotaLedger interface {
	CheckAvailable(ctx context.Context, tenantID string) (bool, error)
	Debit(ctx context.Context, tenantID string, amount int64) (int64, error)
}

// ProviderGateway 定义编排器对生成提供商的最小依赖（port）
type ProviderGateway interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

// Request 一次章节生成请求
type Request struct {
	TenantID          string
	DocumentID        string
	SectionID         string
	SectionName       string
	CustomInstruction string
}

// Result 生成结果
type Result struct {
	Content         string `json:"content"`
	TokensRemaining int64  `json:"tokens_remaining"`
}

// Orchestrator 章节生成编排器
//
// 状态推进：额度检查 → 上下文装配 → 提示词组装 → 提供商调用 →
// 内容落库 → 额度扣减 → 审计追加。提供商调用失败时不扣额度、
// 不改写已有内容；落库之后的扣减竞争不回滚内容，只降级为警告
type Orchestrator struct {
	tenantRepo   repository.TenantRepository
	templateRepo repository.TemplateRepository
	documentRepo repository.DocumentRepository
	sectionRepo  repository.SectionRepository
	recordRepo   repository.GenerationRecordRepository
	ledger       QuotaLedger
	gateway      ProviderGateway
}

// NewOrchestrator 创建生成编排器
func NewOrchestrator(
	tenantRepo repository.TenantRepository,
	templateRepo repository.TemplateRepository,
	documentRepo repository.DocumentRepository,
	sectionRepo repository.SectionRepository,
	recordRepo repository.GenerationRecordRepository,
	ledger QuotaLedger,
	gateway ProviderGateway,
) *Orchestrator {
	return &Orchestrator{
		tenantRepo:   tenantRepo,
		templateRepo: templateRepo,
		documentRepo: documentRepo,
		sectionRepo:  sectionRepo,
		recordRepo:   recordRepo,
		ledger:       ledger,
		gateway:      gateway,
	}
}

// Generate 执行一次章节生成
func (o *Orchestrator) Generate(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "generation.Orchestrator.Generate",
		trace.WithAttributes(
			attribute.String("tenant.id", req.TenantID),
			attribute.String("document.id", req.DocumentID),
			attribute.String("section.id", req.SectionID),
		))
	defer span.End()

	start := time.Now()
	result, err := o.generate(ctx, req)
	metrics.SectionGenerationDuration.WithLabelValues(req.TenantID).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.SectionGenerationTotal.WithLabelValues(req.TenantID, statusLabel(err)).Inc()
		return nil, err
	}

	metrics.SectionGenerationTotal.WithLabelValues(req.TenantID, "success").Inc()
	return result, nil
}

func (o *Orchestrator) generate(ctx context.Context, req *Request) (*Result, error) {
	// 额度检查：耗尽时立即终止，无任何副作用
	available, err := o.ledger.CheckAvailable(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, quota.QuotaExceededError{TenantID: req.TenantID}
	}

	// 装配生成上下文
	tenant, err := o.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.ErrTenantNotFound
	}

	document, err := o.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if document == nil || document.TenantID != req.TenantID {
		return nil, apperrors.ErrDocumentNotFound
	}

	template, err := o.templateRepo.GetByID(ctx, document.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperrors.ErrTemplateNotFound
	}

	section, err := o.sectionRepo.GetByID(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	if section == nil || section.DocumentID != req.DocumentID {
		return nil, apperrors.ErrSectionNotFound
	}

	sectionName := req.SectionName
	if sectionName == "" {
		sectionName = section.Name
	}

	prior, err := o.sectionRepo.ListBefore(ctx, req.DocumentID, section.OrderIndex)
	if err != nil {
		return nil, err
	}

	// 组装提示词（纯函数）
	input := &compose.Input{
		Profile: compose.TenantProfile{
			Name:           tenant.Name,
			About:          tenant.About,
			WebsiteSummary: tenant.WebsiteURL,
			ToneGuidelines: tenant.ToneGuidelines,
		},
		Template: compose.TemplateInfo{
			Name:          template.Name,
			ToneReference: template.ToneReference,
		},
		SectionName:       sectionName,
		PriorSections:     priorToComposeInput(prior),
		CustomInstruction: req.CustomInstruction,
	}
	payload := compose.Compose(input)

	// 提供商调用：失败时终止，不扣额度、不触碰章节内容
	content, err := o.gateway.GenerateText(ctx, payload.System, payload.User)
	if err != nil {
		return nil, err
	}

	// 内容落库
	if err := o.sectionRepo.UpdateContent(ctx, req.SectionID, content, true); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist generated content")
	}

	// 额度扣减：落库后的竞争失败不回滚内容，降级为警告
	remaining, err := o.ledger.Debit(ctx, req.TenantID, debitPerGeneration)
	if err != nil {
		if quota.IsQuotaExceeded(err) {
			logger.Warn(ctx, "ledger debit lost race after persistence",
				"tenant_id", req.TenantID,
				"section_id", req.SectionID,
			)
			remaining = 0
		} else {
			return nil, err
		}
	}

	// 审计追加：尽力而为，失败不影响已返回的生成结果
	record := &entity.GenerationRecord{
		TenantID:         req.TenantID,
		DocumentID:       req.DocumentID,
		SectionID:        req.SectionID,
		TokensConsumed:   debitPerGeneration,
		GenerationType:   entity.GenerationTypeSection,
		PromptDescriptor: input.Descriptor(),
	}
	if err := o.recordRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "failed to append generation record", err,
			"tenant_id", req.TenantID,
			"section_id", req.SectionID,
		)
	}

	return &Result{
		Content:         content,
		TokensRemaining: remaining,
	}, nil
}

func priorToComposeInput(sections []*entity.Section) []compose.PriorSection {
	out := make([]compose.PriorSection, 0, len(sections))
	for _, s := range sections {
		out = append(out, compose.PriorSection{Name: s.Name, Content: s.Content})
	}
	return out
}

func statusLabel(err error) string {
	if quota.IsQuotaExceeded(err) {
		return "quota_exceeded"
	}
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Code {
		case apperrors.CodeProviderError:
			return "provider_error"
		case apperrors.CodeEmptyResult:
			return "empty_result"
		case apperrors.CodeTenantNotFound, apperrors.CodeDocumentNotFound,
			apperrors.CodeTemplateNotFound, apperrors.CodeSectionNotFound:
			return "not_found"
		}
	}
	return "error"
}
