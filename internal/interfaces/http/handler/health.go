// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	pg    *postgres.Client
	redis *redis.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(pg *postgres.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pg:    pg,
		redis: redisClient,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

func runCheck(ctx context.Context, check *readinessCheck, ping func(ctx context.Context) error) {
	if ping == nil {
		check.Status = "missing"
		check.Error = "dependency not configured"
		return
	}
	start := time.Now()
	err := ping(ctx)
	check.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
		return
	}
	check.Status = "ok"
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"postgres": {Status: "unknown"},
		"redis":    {Status: "unknown"},
	}

	var pgPing, redisPing func(ctx context.Context) error
	if h.pg != nil {
		pgPing = h.pg.HealthCheck
	}
	if h.redis != nil {
		redisPing = h.redis.HealthCheck
	}

	// 依赖检查并行执行，各自写入独立的条目
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runCheck(gctx, checks["postgres"], pgPing)
		return nil
	})
	g.Go(func() error {
		runCheck(gctx, checks["redis"], redisPing)
		return nil
	})
	_ = g.Wait()

	status := http.StatusOK
	resp := readinessResponse{Status: "ready", Checks: checks}
	for _, check := range checks {
		if check.Status != "ok" {
			status = http.StatusServiceUnavailable
			resp.Status = "not_ready"
			break
		}
	}

	c.JSON(status, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
	})
}
