// Package handler 提供 HTTP 请求处理器
package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/tenant"
	redisinfra "docforge-ai-api/internal/infrastructure/persistence/redis"
	"docforge-ai-api/internal/infrastructure/webhook"
	"docforge-ai-api/internal/interfaces/http/dto"
	"docforge-ai-api/pkg/logger"
)

// svix 事件 ID 头，用于幂等去重
const webhookIDHeader = "svix-id"

// WebhookHandler 身份提供商 Webhook 处理器
type WebhookHandler struct {
	verifier webhook.Verifier
	dedup    *redisinfra.Deduplicator
	tenants  *tenant.Service
}

// NewWebhookHandler 创建 Webhook 处理器
func NewWebhookHandler(verifier webhook.Verifier, dedup *redisinfra.Deduplicator, tenants *tenant.Service) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		dedup:    dedup,
		tenants:  tenants,
	}
}

// HandleIdentityEvent 处理身份提供商事件
// user.created 开通租户与默认台账（幂等）；其余事件确认收到后忽略
// @Summary 身份提供商 Webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookAckResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.BadRequest(c, "failed to read payload")
		return
	}

	// 签名校验失败一律 403，不暴露细节
	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		logger.Warn(ctx, "webhook signature verification failed", "error", err)
		dto.Error(c, http.StatusForbidden, "invalid webhook signature")
		return
	}

	var event dto.IdentityWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		dto.BadRequest(c, "malformed event payload")
		return
	}

	if event.Type != "user.created" {
		c.JSON(http.StatusOK, dto.WebhookAckResponse{Received: true})
		return
	}

	// 事件级去重：同一投递 ID 只处理一次
	eventID := c.GetHeader(webhookIDHeader)
	if eventID != "" && h.dedup != nil {
		first, err := h.dedup.MarkOnce(ctx, eventID)
		if err != nil {
			logger.Warn(ctx, "webhook dedup check failed, continuing", "event_id", eventID, "error", err)
		} else if !first {
			logger.Info(ctx, "duplicate webhook delivery skipped", "event_id", eventID)
			c.JSON(http.StatusOK, dto.WebhookAckResponse{Received: true})
			return
		}
	}

	t, err := h.tenants.Onboard(ctx, event.Data.ID, event.Data.DisplayName())
	if err != nil {
		// 处理失败时撤销去重标记，允许提供商重试投递
		if eventID != "" && h.dedup != nil {
			if ferr := h.dedup.Forget(ctx, eventID); ferr != nil {
				logger.Warn(ctx, "failed to release dedup mark", "event_id", eventID, "error", ferr)
			}
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAckResponse{
		Received: true,
		TenantID: t.ID,
	})
}
