// Package tenant 提供租户开通与档案管理
package tenant

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"

	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/domain/repository"
	redisinfra "docforge-ai-api/internal/infrastructure/persistence/redis"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/logger"
)

var tracer = otel.Tracer("tenant")

const profileCacheTTL = 5 * time.Minute

// Service 租户服务
type Service struct {
	tenantRepo repository.TenantRepository
	ledger     *quota.Ledger
	txManager  repository.Transactor
	cache      *redisinfra.Cache
	quotaCfg   *config.QuotaConfig
}

// NewService 创建租户服务
func NewService(
	tenantRepo repository.TenantRepository,
	ledger *quota.Ledger,
	txManager repository.Transactor,
	cache *redisinfra.Cache,
	cfg *config.Config,
) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		ledger:     ledger,
		txManager:  txManager,
		cache:      cache,
		quotaCfg:   &cfg.Quota,
	}
}

// Onboard 根据身份提供商信号开通租户
// 幂等：同一主体 ID 重复投递时直接返回已有租户，不重复建台账
func (s *Service) Onboard(ctx context.Context, externalSubject, name string) (*entity.Tenant, error) {
	ctx, span := tracer.Start(ctx, "tenant.Service.Onboard")
	defer span.End()

	existing, err := s.tenantRepo.GetByExternalSubject(ctx, externalSubject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info(ctx, "tenant already provisioned, skipping",
			"external_subject", externalSubject,
			"tenant_id", existing.ID,
		)
		return existing, nil
	}

	// 租户与默认台账在同一事务中建立
	tenant := entity.NewTenant(externalSubject, name)
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			return err
		}
		_, err := s.ledger.Provision(ctx, tenant.ID, s.quotaCfg.DefaultPlan, s.quotaCfg.DefaultAllocation)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to provision tenant")
	}

	logger.Info(ctx, "tenant provisioned",
		"tenant_id", tenant.ID,
		"plan", s.quotaCfg.DefaultPlan,
		"allocation", s.quotaCfg.DefaultAllocation,
	)
	return tenant, nil
}

// GetProfile 获取租户档案（经 Redis 缓存）
func (s *Service) GetProfile(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	ctx, span := tracer.Start(ctx, "tenant.Service.GetProfile")
	defer span.End()

	key := redisinfra.BuildTenantKey(tenantID)
	bytes, err := s.cache.GetOrLoadSafe(ctx, key, profileCacheTTL, func() (interface{}, error) {
		tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, apperrors.ErrTenantNotFound
		}
		return tenant, nil
	})
	if err != nil {
		return nil, err
	}

	var tenant entity.Tenant
	if err := json.Unmarshal(bytes, &tenant); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached tenant")
	}
	return &tenant, nil
}

// UpdateProfileInput 档案更新输入，nil 字段保持不变
type UpdateProfileInput struct {
	Name           *string
	About          *string
	WebsiteURL     *string
	ToneGuidelines *string
}

// UpdateProfile 更新租户档案并使缓存失效
func (s *Service) UpdateProfile(ctx context.Context, tenantID string, in *UpdateProfileInput) (*entity.Tenant, error) {
	ctx, span := tracer.Start(ctx, "tenant.Service.UpdateProfile")
	defer span.End()

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.ErrTenantNotFound
	}

	if in.Name != nil {
		tenant.Name = *in.Name
	}
	if in.About != nil {
		tenant.About = *in.About
	}
	if in.WebsiteURL != nil {
		tenant.WebsiteURL = *in.WebsiteURL
	}
	if in.ToneGuidelines != nil {
		tenant.ToneGuidelines = *in.ToneGuidelines
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		logger.Warn(ctx, "failed to invalidate tenant cache", "tenant_id", tenantID, "error", err)
	}

	return tenant, nil
}

// GetQuota 获取租户额度快照
func (s *Service) GetQuota(ctx context.Context, tenantID string) (*quota.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "tenant.Service.GetQuota")
	defer span.End()

	return s.ledger.GetSnapshot(ctx, tenantID)
}
