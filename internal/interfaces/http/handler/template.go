// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/template"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// TemplateHandler 模板处理器
type TemplateHandler struct {
	service *template.Service
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(service *template.Service) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// Create 创建模板
// @Summary 创建模板
// @Tags Templates
// @Accept json
// @Produce json
// @Param body body dto.CreateTemplateRequest true "模板内容"
// @Success 201 {object} dto.Response[dto.TemplateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tpl, err := h.service.Create(ctx, tenantID, &template.CreateInput{
		Name:          req.Name,
		Description:   req.Description,
		ToneReference: req.ToneReference,
		Structure:     dto.ToBlueprints(req.Structure),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToTemplateResponse(tpl))
}

// Get 获取模板
// @Summary 获取模板
// @Tags Templates
// @Produce json
// @Param id path string true "模板 ID"
// @Success 200 {object} dto.Response[dto.TemplateResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	tpl, err := h.service.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTemplateResponse(tpl))
}

// Update 更新模板
// @Summary 更新模板
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "模板 ID"
// @Param body body dto.UpdateTemplateRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.TemplateResponse]
// @Router /v1/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := &template.UpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		ToneReference: req.ToneReference,
	}
	if req.Structure != nil {
		in.Structure = dto.ToBlueprints(req.Structure)
	}

	tpl, err := h.service.Update(ctx, tenantID, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTemplateResponse(tpl))
}

// Delete 删除模板
// @Summary 删除模板
// @Tags Templates
// @Param id path string true "模板 ID"
// @Success 204
// @Router /v1/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.service.Delete(ctx, tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}

// List 获取模板列表
// @Summary 获取模板列表
// @Tags Templates
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.TemplateResponse]
// @Router /v1/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BadRequest(c, "invalid query: "+err.Error())
		return
	}

	result, err := h.service.List(ctx, tenantID, query.ToPagination())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToTemplateResponses(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}
