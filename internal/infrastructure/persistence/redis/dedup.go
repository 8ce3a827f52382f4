// Package redis 提供 Redis 事件去重实现
package redis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Deduplicator Webhook 事件去重器
// 基于 SETNX：同一事件 ID 在 TTL 内只允许首次投递生效，重放时幂等跳过
type Deduplicator struct {
	client *Client
	ttl    time.Duration
}

// NewDeduplicator 创建事件去重器
func NewDeduplicator(client *Client, ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Deduplicator{client: client, ttl: ttl}
}

// MarkOnce 标记事件，首次出现返回 true，重复投递返回 false
func (d *Deduplicator) MarkOnce(ctx context.Context, eventID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "dedup.MarkOnce",
		trace.WithAttributes(attribute.String("dedup.event_id", eventID)))
	defer span.End()

	key := buildDedupKey(eventID)
	ok, err := d.client.rdb.SetNX(ctx, key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to mark event: %w", err)
	}

	span.SetAttributes(attribute.Bool("dedup.first_seen", ok))
	return ok, nil
}

// Forget 移除事件标记（处理失败后允许重试投递）
func (d *Deduplicator) Forget(ctx context.Context, eventID string) error {
	ctx, span := tracer.Start(ctx, "dedup.Forget",
		trace.WithAttributes(attribute.String("dedup.event_id", eventID)))
	defer span.End()

	return d.client.rdb.Del(ctx, buildDedupKey(eventID)).Err()
}

func buildDedupKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}
