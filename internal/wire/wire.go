//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"docforge-ai-api/internal/application/document"
	"docforge-ai-api/internal/application/export"
	"docforge-ai-api/internal/application/generation"
	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/application/template"
	"docforge-ai-api/internal/application/tenant"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/infrastructure/llm"
	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/infrastructure/persistence/redis"
	"docforge-ai-api/internal/interfaces/http/handler"
	"docforge-ai-api/internal/interfaces/http/middleware"
	"docforge-ai-api/internal/interfaces/http/router"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		LLMSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewTenantContext,
	postgres.NewTenantRepository,
	postgres.NewSubscriptionRepository,
	postgres.NewTemplateRepository,
	postgres.NewDocumentRepository,
	postgres.NewSectionRepository,
	postgres.NewGenerationRecordRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.TenantContextManager), new(*postgres.TenantContext)),
	wire.Bind(new(repository.TenantRepository), new(*postgres.TenantRepository)),
	wire.Bind(new(repository.SubscriptionRepository), new(*postgres.SubscriptionRepository)),
	wire.Bind(new(repository.TemplateRepository), new(*postgres.TemplateRepository)),
	wire.Bind(new(repository.DocumentRepository), new(*postgres.DocumentRepository)),
	wire.Bind(new(repository.SectionRepository), new(*postgres.SectionRepository)),
	wire.Bind(new(repository.GenerationRecordRepository), new(*postgres.GenerationRecordRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	ProvideDeduplicator,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// LLMSet LLM 提供者集合
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	llm.NewGateway,
	wire.Bind(new(generation.ProviderGateway), new(*llm.Gateway)),
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	quota.NewLedger,
	wire.Bind(new(generation.QuotaLedger), new(*quota.Ledger)),
	tenant.NewService,
	template.NewService,
	document.NewService,
	generation.NewOrchestrator,
	generation.NewHistory,
	export.NewExporter,
	ProvideWebhookVerifier,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewTenantHandler,
	handler.NewTemplateHandler,
	handler.NewDocumentHandler,
	handler.NewSectionHandler,
	handler.NewGenerationHandler,
	handler.NewWebhookHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
