// Package handler 提供 HTTP 请求处理器
package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/document"
	"docforge-ai-api/internal/application/export"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// DocumentHandler 文档处理器
type DocumentHandler struct {
	service  *document.Service
	exporter *export.Exporter
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(service *document.Service, exporter *export.Exporter) *DocumentHandler {
	return &DocumentHandler{
		service:  service,
		exporter: exporter,
	}
}

// Create 从模板实例化文档
// @Summary 创建文档
// @Description 从模板实例化文档，模板结构中定义的章节随文档一并建立
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body dto.CreateDocumentRequest true "文档内容"
// @Success 201 {object} dto.Response[dto.DocumentDetailResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Create(ctx, tenantID, req.TemplateID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToDocumentDetailResponse(result))
}

// Get 获取文档详情（含有序章节）
// @Summary 获取文档详情
// @Tags Documents
// @Produce json
// @Param id path string true "文档 ID"
// @Success 200 {object} dto.Response[dto.DocumentDetailResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	result, err := h.service.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToDocumentDetailResponse(result))
}

// Update 更新文档
// @Summary 更新文档
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "文档 ID"
// @Param body body dto.UpdateDocumentRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.DocumentResponse]
// @Router /v1/documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	doc, err := h.service.Update(ctx, tenantID, c.Param("id"), &document.UpdateInput{
		Title:    req.Title,
		Status:   req.Status,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToDocumentResponse(doc))
}

// Delete 删除文档
// @Summary 删除文档
// @Tags Documents
// @Param id path string true "文档 ID"
// @Success 204
// @Router /v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.service.Delete(ctx, tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}

// List 获取文档列表
// @Summary 获取文档列表
// @Tags Documents
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param template_id query string false "按模板过滤"
// @Param status query string false "按状态过滤"
// @Success 200 {object} dto.Response[[]dto.DocumentResponse]
// @Router /v1/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BadRequest(c, "invalid query: "+err.Error())
		return
	}

	filter := &repository.DocumentFilter{
		TemplateID: c.Query("template_id"),
		Status:     entity.DocumentStatus(c.Query("status")),
	}

	result, err := h.service.List(ctx, tenantID, filter, query.ToPagination())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToDocumentResponses(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// Export 导出文档
// @Summary 导出文档
// @Description 将文档及其有序章节导出为 PDF 或 DOCX 字节流
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "文档 ID"
// @Param format query string true "导出格式 (pdf|docx)"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/documents/{id}/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	format, err := export.ParseFormat(c.DefaultQuery("format", "pdf"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.exporter.Export(ctx, format, result.Document, result.Sections)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", result.Document.Title, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, format.ContentType(), data)
}
