// Package llm 提供生成提供商的访问层
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
	"docforge-ai-api/pkg/metrics"
)

var gatewayTracer = otel.Tracer("llm.gateway")

// GenerateRequest 一次生成调用的输入
type GenerateRequest struct {
	// Provider 为空时使用默认提供商
	Provider string
	System   string
	User     string
}

// GenerateResult 生成结果
type GenerateResult struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Gateway 生成提供商网关
// 将 ChatModel 的调用收敛为单一入口：提供商故障与空结果
// 被映射为各自的应用错误码，上层据此决定是否扣减额度
type Gateway struct {
	factory *EinoFactory
}

// NewGateway 创建生成网关
func NewGateway(factory *EinoFactory) *Gateway {
	return &Gateway{factory: factory}
}

// Generate 调用提供商生成文本
func (g *Gateway) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	ctx, span := gatewayTracer.Start(ctx, "llm.Gateway.Generate",
		trace.WithAttributes(attribute.String("llm.provider", req.Provider)))
	defer span.End()

	provider := req.Provider
	if provider == "" {
		provider = g.factory.config.DefaultProvider
	}

	chatModel, err := g.factory.Get(ctx, provider)
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, "", "config_error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeProviderError, "generation provider unavailable")
	}

	modelName := ""
	if cfg, ok := g.factory.config.Providers[provider]; ok {
		modelName = cfg.Model
	}

	messages := []*schema.Message{
		schema.SystemMessage(req.System),
		schema.UserMessage(req.User),
	}

	start := time.Now()
	outMsg, err := chatModel.Generate(ctx, messages)
	elapsed := time.Since(start)
	metrics.LLMCallDuration.WithLabelValues(provider, modelName).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "error").Inc()
		logger.Error(ctx, "provider call failed", err,
			"provider", provider,
			"model", modelName,
			"elapsed_ms", elapsed.Milliseconds(),
		)
		return nil, apperrors.Wrap(err, apperrors.CodeProviderError, "generation provider failed")
	}

	content := strings.TrimSpace(outMsg.Content)
	if content == "" {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "empty").Inc()
		logger.Warn(ctx, "provider returned empty content",
			"provider", provider,
			"model", modelName,
		)
		return nil, apperrors.New(apperrors.CodeEmptyResult, "provider returned no usable text")
	}

	metrics.LLMCallTotal.WithLabelValues(provider, modelName, "success").Inc()

	result := &GenerateResult{
		Content: content,
		Model:   modelName,
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		result.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		result.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "prompt").Add(float64(result.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "completion").Add(float64(result.CompletionTokens))
	}

	span.SetAttributes(
		attribute.String("llm.model", modelName),
		attribute.Int("llm.completion_tokens", result.CompletionTokens),
	)
	return result, nil
}

// GenerateText 使用默认提供商生成文本，只返回正文
func (g *Gateway) GenerateText(ctx context.Context, system, user string) (string, error) {
	result, err := g.Generate(ctx, &GenerateRequest{System: system, User: user})
	if err != nil {
		return "", err
	}
	return result.Content, nil
}
