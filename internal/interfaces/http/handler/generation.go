// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/generation"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// GenerationHandler 章节生成处理器
type GenerationHandler struct {
	orchestrator *generation.Orchestrator
	history      *generation.History
}

// NewGenerationHandler 创建章节生成处理器
func NewGenerationHandler(orchestrator *generation.Orchestrator, history *generation.History) *GenerationHandler {
	return &GenerationHandler{
		orchestrator: orchestrator,
		history:      history,
	}
}

// Generate 生成章节内容
// @Summary 生成章节内容
// @Description 额度检查 → 提示词组装 → 提供商调用 → 内容落库 → 额度扣减 → 审计追加
// @Tags Generation
// @Accept json
// @Produce json
// @Param id path string true "文档 ID"
// @Param sid path string true "章节 ID"
// @Param body body dto.GenerateSectionRequest false "生成参数"
// @Success 200 {object} dto.Response[dto.GenerateSectionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/documents/{id}/sections/{sid}/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.GenerateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.orchestrator.Generate(ctx, &generation.Request{
		TenantID:          tenantID,
		DocumentID:        c.Param("id"),
		SectionID:         c.Param("sid"),
		SectionName:       req.SectionName,
		CustomInstruction: req.CustomPrompt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, &dto.GenerateSectionResponse{
		Content:         result.Content,
		TokensRemaining: result.TokensRemaining,
	})
}

// ListHistory 获取生成历史
// @Summary 获取生成历史
// @Tags Generation
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.GenerationRecordResponse]
// @Router /v1/generations [get]
func (h *GenerationHandler) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BadRequest(c, "invalid query: "+err.Error())
		return
	}

	result, err := h.history.ListByTenant(ctx, tenantID, query.ToPagination())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToGenerationRecordResponses(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}
