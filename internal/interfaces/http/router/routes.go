package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本的业务路由
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers) {
	// 租户路由
	tenants := v1.Group("/tenants")
	{
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateCurrentTenant)
		tenants.GET("/current/quota", h.Tenant.GetQuota)
	}

	// 模板路由
	templates := v1.Group("/templates")
	{
		templates.POST("", h.Template.Create)
		templates.GET("", h.Template.List)
		templates.GET("/:id", h.Template.Get)
		templates.PUT("/:id", h.Template.Update)
		templates.DELETE("/:id", h.Template.Delete)
	}

	// 文档路由
	documents := v1.Group("/documents")
	{
		documents.POST("", h.Document.Create)
		documents.GET("", h.Document.List)
		documents.GET("/:id", h.Document.Get)
		documents.PUT("/:id", h.Document.Update)
		documents.DELETE("/:id", h.Document.Delete)
		documents.GET("/:id/export", h.Document.Export)

		// 文档章节路由
		documents.GET("/:id/sections", h.Section.List)
		documents.POST("/:id/sections", h.Section.Append)
		documents.PUT("/:id/sections/:sid", h.Section.Update)
		documents.DELETE("/:id/sections/:sid", h.Section.Delete)

		// 章节生成
		documents.POST("/:id/sections/:sid/generate", h.Generation.Generate)
	}

	// 生成历史路由
	generations := v1.Group("/generations")
	{
		generations.GET("", h.Generation.ListHistory)
	}
}
