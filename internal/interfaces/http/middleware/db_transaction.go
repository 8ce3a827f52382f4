// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/pkg/logger"
)

type rollbackOnlyError struct {
	status int
}

func (e rollbackOnlyError) Error() string {
	return fmt.Sprintf("rollback only: status=%d", e.status)
}

// DBTransaction 为每个 HTTP 请求自动管理数据库事务，并设置多租户安全上下文。
//
// 核心功能：
//  1. 请求级事务：将整个请求的处理过程包裹在一个数据库事务中。
//  2. 多租户隔离 (RLS Context)：事务开启后立即设置当前租户 ID，确保
//     PostgreSQL 行级安全策略生效。`set_config(..., is_local=TRUE)` 仅在
//     当前事务内有效，因此必须绑定在事务中。
//  3. 自动提交/回滚：HTTP 状态码 < 400 且无内部错误时提交，否则回滚。
func DBTransaction(tx repository.Transactor, tenantCtx repository.TenantContextManager) gin.HandlerFunc {
	if tx == nil || tenantCtx == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// 生成与导出请求耗时较长（LLM 调用 / 文件渲染），不应长时间占用
		// 事务连接；配额扣减也必须在内容持久化后独立提交。
		// 此类请求在用例内部按需创建短事务。
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/generate") || strings.HasSuffix(path, "/export") {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		tenantID := GetTenantID(ctx)

		err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
			// 必须在事务开启后、执行任何查询前设置租户上下文，
			// 否则 RLS 策略下无法看到租户数据。
			if tenantID != "" {
				if err := tenantCtx.SetTenant(txCtx, tenantID); err != nil {
					return err
				}
			}

			c.Request = c.Request.WithContext(txCtx)
			c.Next()

			status := c.Writer.Status()
			if status >= http.StatusBadRequest {
				return rollbackOnlyError{status: status}
			}
			if len(c.Errors) > 0 {
				return rollbackOnlyError{status: status}
			}
			return nil
		})

		if err == nil {
			return
		}

		// rollbackOnlyError 表示业务逻辑主动要求回滚，响应已由 Handler 写入
		var rbErr rollbackOnlyError
		if errors.As(err, &rbErr) {
			return
		}

		// 数据库层面的系统错误（提交失败、死锁等）
		logger.Error(ctx, "db transaction failed", err)
		if !c.Writer.Written() && c.Writer.Status() < http.StatusBadRequest {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":     http.StatusInternalServerError,
				"message":  "internal server error",
				"trace_id": c.GetString("trace_id"),
			})
		}
	}
}
