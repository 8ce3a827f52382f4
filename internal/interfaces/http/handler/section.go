// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/document"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// SectionHandler 章节处理器
type SectionHandler struct {
	service *document.Service
}

// NewSectionHandler 创建章节处理器
func NewSectionHandler(service *document.Service) *SectionHandler {
	return &SectionHandler{service: service}
}

// List 获取文档章节列表
// @Summary 获取章节列表
// @Description 按 order_index 升序返回文档的全部章节
// @Tags Sections
// @Produce json
// @Param id path string true "文档 ID"
// @Success 200 {object} dto.Response[[]dto.SectionResponse]
// @Router /v1/documents/{id}/sections [get]
func (h *SectionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	sections, err := h.service.ListSections(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToSectionResponses(sections))
}

// Append 追加章节
// @Summary 追加章节
// @Description 未指定序号时自动取 max(existing)+1
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path string true "文档 ID"
// @Param body body dto.AppendSectionRequest true "章节内容"
// @Success 201 {object} dto.Response[dto.SectionResponse]
// @Router /v1/documents/{id}/sections [post]
func (h *SectionHandler) Append(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.AppendSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	section, err := h.service.AppendSection(ctx, tenantID, c.Param("id"), req.Name, req.OrderIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToSectionResponse(section))
}

// Update 更新章节（用户直接编辑）
// @Summary 更新章节
// @Description 用户直接编辑内容时清除 AI 生成标记
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path string true "文档 ID"
// @Param sid path string true "章节 ID"
// @Param body body dto.UpdateSectionRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.SectionResponse]
// @Router /v1/documents/{id}/sections/{sid} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)
	documentID := c.Param("id")
	sectionID := c.Param("sid")

	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.Content == nil && req.Name == nil {
		dto.BadRequest(c, "nothing to update")
		return
	}

	var (
		section *entity.Section
		err     error
	)
	if req.Content != nil {
		section, err = h.service.UpdateSectionContent(ctx, tenantID, documentID, sectionID, *req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Name != nil {
		section, err = h.service.RenameSection(ctx, tenantID, documentID, sectionID, *req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	dto.Success(c, dto.ToSectionResponse(section))
}

// Delete 删除章节
// @Summary 删除章节
// @Tags Sections
// @Param id path string true "文档 ID"
// @Param sid path string true "章节 ID"
// @Success 204
// @Router /v1/documents/{id}/sections/{sid} [delete]
func (h *SectionHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.service.DeleteSection(ctx, tenantID, c.Param("id"), c.Param("sid")); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}
