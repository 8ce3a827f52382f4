// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/tenant"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/internal/interfaces/http/middleware"
)

// TenantHandler 租户处理器
type TenantHandler struct {
	service *tenant.Service
}

// NewTenantHandler 创建租户处理器
func NewTenantHandler(service *tenant.Service) *TenantHandler {
	return &TenantHandler{service: service}
}

// GetCurrentTenant 获取当前租户档案
// @Summary 获取当前租户档案
// @Tags Tenants
// @Produce json
// @Success 200 {object} dto.Response[dto.TenantResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/tenants/current [get]
func (h *TenantHandler) GetCurrentTenant(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	t, err := h.service.GetProfile(ctx, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTenantResponse(t))
}

// UpdateCurrentTenant 更新当前租户档案
// @Summary 更新当前租户档案
// @Tags Tenants
// @Accept json
// @Produce json
// @Param body body dto.UpdateTenantRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.TenantResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/tenants/current [put]
func (h *TenantHandler) UpdateCurrentTenant(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	t, err := h.service.UpdateProfile(ctx, tenantID, &tenant.UpdateProfileInput{
		Name:           req.Name,
		About:          req.About,
		WebsiteURL:     req.WebsiteURL,
		ToneGuidelines: req.ToneGuidelines,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTenantResponse(t))
}

// GetQuota 获取当前租户额度快照
// @Summary 获取额度快照
// @Tags Tenants
// @Produce json
// @Success 200 {object} dto.Response[dto.QuotaResponse]
// @Router /v1/tenants/current/quota [get]
func (h *TenantHandler) GetQuota(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	snapshot, err := h.service.GetQuota(ctx, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToQuotaResponse(snapshot))
}
