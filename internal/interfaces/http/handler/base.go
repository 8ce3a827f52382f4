// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/interfaces/http/dto"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
)

// respondError 按错误分类映射 HTTP 响应
// 额度耗尽映射 429；AppError 自带状态码；其余归为 500
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if qerr, ok := err.(quota.QuotaExceededError); ok {
		dto.ErrorWithDetail(c, 429, "token limit reached, please upgrade your plan or wait for renewal", &dto.ErrorDetail{
			ErrorCode: string(apperrors.CodeQuotaExceeded),
			Details:   qerr.Error(),
		})
		return
	}

	if appErr, ok := err.(*apperrors.AppError); ok {
		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, "request failed", err, "path", c.Request.URL.Path)
		}
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		})
		return
	}

	logger.Error(ctx, "request failed", err, "path", c.Request.URL.Path)
	dto.InternalError(c, "internal server error")
}
