package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge-ai-api/internal/application/quota"
	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
)

type fakeTenantRepo struct {
	byID      map[string]*entity.Tenant
	bySubject map[string]*entity.Tenant
	createErr error
	seq       int
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byID:      map[string]*entity.Tenant{},
		bySubject: map[string]*entity.Tenant{},
	}
}

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	if f.createErr != nil {
		return f.createErr
	}
	if t.ID == "" {
		f.seq++
		t.ID = string(rune('a' + f.seq))
	}
	f.byID[t.ID] = t
	f.bySubject[t.ExternalSubject] = t
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.byID[id], nil
}

func (f *fakeTenantRepo) GetByExternalSubject(_ context.Context, subject string) (*entity.Tenant, error) {
	return f.bySubject[subject], nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTenantRepo) ExistsByExternalSubject(_ context.Context, subject string) (bool, error) {
	return f.bySubject[subject] != nil, nil
}

type fakeSubRepo struct {
	subs map[string]*entity.Subscription
}

func (f *fakeSubRepo) Create(_ context.Context, sub *entity.Subscription) error {
	f.subs[sub.TenantID] = sub
	return nil
}
func (f *fakeSubRepo) GetByTenant(_ context.Context, tenantID string) (*entity.Subscription, error) {
	return f.subs[tenantID], nil
}
func (f *fakeSubRepo) Debit(_ context.Context, tenantID string, amount int64) (int64, bool, error) {
	sub := f.subs[tenantID]
	if sub == nil || sub.TokensUsed+amount > sub.TokensAllocated {
		return 0, false, nil
	}
	sub.TokensUsed += amount
	return sub.TokensRemaining(), true, nil
}
func (f *fakeSubRepo) ResetPeriod(_ context.Context, _ string, _ int64) error { return nil }

// passthroughTx 直接执行，无真实事务
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeTenantRepo, *fakeSubRepo) {
	tenantRepo := newFakeTenantRepo()
	subRepo := &fakeSubRepo{subs: map[string]*entity.Subscription{}}
	cfg := &config.Config{
		Quota: config.QuotaConfig{DefaultPlan: "pro", DefaultAllocation: 100},
	}
	svc := NewService(tenantRepo, quota.NewLedger(subRepo), passthroughTx{}, nil, cfg)
	return svc, tenantRepo, subRepo
}

func TestOnboardProvisionsTenantAndLedger(t *testing.T) {
	svc, _, subRepo := newTestService()

	tenant, err := svc.Onboard(context.Background(), "user_2abc", "Acme Robotics")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "user_2abc", tenant.ExternalSubject)
	assert.Equal(t, "Acme Robotics", tenant.Name)
	assert.Equal(t, entity.TenantStatusActive, tenant.Status)

	sub := subRepo.subs[tenant.ID]
	require.NotNil(t, sub)
	assert.Equal(t, "pro", sub.PlanName)
	assert.Equal(t, int64(100), sub.TokensAllocated)
	assert.Equal(t, int64(0), sub.TokensUsed)
}

func TestOnboardIdempotent(t *testing.T) {
	svc, repo, subRepo := newTestService()

	first, err := svc.Onboard(context.Background(), "user_2abc", "Acme Robotics")
	require.NoError(t, err)

	// 同一主体重复投递：返回已有租户，不重复建台账
	second, err := svc.Onboard(context.Background(), "user_2abc", "Acme Robotics Retry")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme Robotics", second.Name)
	assert.Len(t, repo.byID, 1)
	assert.Len(t, subRepo.subs, 1)
}

func TestOnboardCreateFailure(t *testing.T) {
	svc, repo, subRepo := newTestService()
	repo.createErr = errors.New("unique violation")

	_, err := svc.Onboard(context.Background(), "user_2abc", "Acme")
	require.Error(t, err)
	assert.Empty(t, subRepo.subs)
}

func TestGetQuota(t *testing.T) {
	svc, _, subRepo := newTestService()

	tenant, err := svc.Onboard(context.Background(), "user_2abc", "Acme")
	require.NoError(t, err)

	subRepo.subs[tenant.ID].TokensUsed = 40

	snap, err := svc.GetQuota(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Allocated)
	assert.Equal(t, int64(40), snap.Used)
	assert.Equal(t, int64(60), snap.Remaining)
}
