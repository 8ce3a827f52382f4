// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/internal/infrastructure/persistence/postgres"
	"docforge-ai-api/internal/infrastructure/persistence/redis"
	"docforge-ai-api/internal/infrastructure/webhook"
)

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient         *postgres.Client
	TxManager        repository.Transactor
	TenantContext    *postgres.TenantContext
	TenantRepo       *postgres.TenantRepository
	SubscriptionRepo *postgres.SubscriptionRepository
	TemplateRepo     *postgres.TemplateRepository
	DocumentRepo     *postgres.DocumentRepository
	SectionRepo      *postgres.SectionRepository
	RecordRepo       *postgres.GenerationRecordRepository
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideDeduplicator 提供 Webhook 事件去重器
func ProvideDeduplicator(client *redis.Client, cfg *config.Config) *redis.Deduplicator {
	return redis.NewDeduplicator(client, cfg.Security.Webhook.DedupTTL)
}

// ProvideWebhookVerifier 提供 Webhook 签名校验器
func ProvideWebhookVerifier(cfg *config.Config) (webhook.Verifier, error) {
	return webhook.NewSvixVerifier(cfg.Security.Webhook.Secret)
}
