// Package router 提供 HTTP 路由配置
package router

import (
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/interfaces/http/handler"
	"docforge-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由所需的全部处理器
type Handlers struct {
	Health     *handler.HealthHandler
	Tenant     *handler.TenantHandler
	Template   *handler.TemplateHandler
	Document   *handler.DocumentHandler
	Section    *handler.SectionHandler
	Generation *handler.GenerationHandler
	Webhook    *handler.WebhookHandler
}

// Router HTTP 路由器
type Router struct {
	engine    *gin.Engine
	cfg       *config.Config
	handlers  *Handlers
	limiter   middleware.RateLimiter
	txManager repository.Transactor
	tenantCtx repository.TenantContextManager
}

// New 创建新的路由器
func New(
	cfg *config.Config,
	handlers *Handlers,
	limiter middleware.RateLimiter,
	txManager repository.Transactor,
	tenantCtx repository.TenantContextManager,
) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:    engine,
		cfg:       cfg,
		handlers:  handlers,
		limiter:   limiter,
		txManager: txManager,
		tenantCtx: tenantCtx,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 认证与租户上下文
	r.engine.Use(middleware.Auth(middleware.AuthConfig{
		Secret:    r.cfg.Security.JWT.Secret,
		Issuer:    r.cfg.Security.JWT.Issuer,
		SkipPaths: middleware.DefaultSkipPaths,
		Enabled:   true,
	}))
	r.engine.Use(middleware.Tenant(middleware.TenantConfig{Enabled: true}))

	// 限流
	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
	}, r.limiter))

	// 访问日志
	r.engine.Use(middleware.Audit(middleware.AuditConfig{
		Enabled:   true,
		SkipPaths: middleware.DefaultAuditSkipPaths,
	}))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 身份提供商 Webhook（签名校验，不走 JWT 认证）
	webhooks := r.engine.Group("/webhooks")
	{
		webhooks.POST("/identity", h.Webhook.HandleIdentityEvent)
	}

	// API v1 路由组：请求级事务 + RLS 租户上下文
	v1 := r.engine.Group("/v1")
	v1.Use(middleware.DBTransaction(r.txManager, r.tenantCtx))
	RegisterV1Routes(v1, h)
}
