package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge-ai-api/internal/domain/entity"
	apperrors "docforge-ai-api/pkg/errors"
)

// fakeSubscriptionRepo 内存版台账，Debit 语义与 SQL 带条件 UPDATE 一致
type fakeSubscriptionRepo struct {
	subs    map[string]*entity.Subscription
	failErr error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[string]*entity.Subscription{}}
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.subs[sub.TenantID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) GetByTenant(_ context.Context, tenantID string) (*entity.Subscription, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.subs[tenantID], nil
}

func (f *fakeSubscriptionRepo) Debit(_ context.Context, tenantID string, amount int64) (int64, bool, error) {
	if f.failErr != nil {
		return 0, false, f.failErr
	}
	sub, ok := f.subs[tenantID]
	if !ok {
		return 0, false, nil
	}
	if sub.TokensUsed+amount > sub.TokensAllocated {
		return 0, false, nil
	}
	sub.TokensUsed += amount
	return sub.TokensRemaining(), true, nil
}

func (f *fakeSubscriptionRepo) ResetPeriod(_ context.Context, tenantID string, allocated int64) error {
	sub, ok := f.subs[tenantID]
	if !ok {
		return nil
	}
	sub.TokensAllocated = allocated
	sub.TokensUsed = 0
	return nil
}

func seedSub(repo *fakeSubscriptionRepo, tenantID string, allocated, used int64) {
	sub := entity.NewSubscription(tenantID, "pro", allocated)
	sub.TokensUsed = used
	repo.subs[tenantID] = sub
}

func TestCheckAvailable(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	seedSub(repo, "t1", 10, 9)
	ledger := NewLedger(repo)

	ok, err := ledger.CheckAvailable(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	seedSub(repo, "t2", 10, 10)
	ok, err = ledger.CheckAvailable(context.Background(), "t2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAvailableNoSubscription(t *testing.T) {
	ledger := NewLedger(newFakeSubscriptionRepo())

	_, err := ledger.CheckAvailable(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotFound)
}

func TestGetSnapshot(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	seedSub(repo, "t1", 100, 37)
	ledger := NewLedger(repo)

	snap, err := ledger.GetSnapshot(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Allocated)
	assert.Equal(t, int64(37), snap.Used)
	assert.Equal(t, int64(63), snap.Remaining)
}

func TestDebit(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	seedSub(repo, "t1", 10, 8)
	ledger := NewLedger(repo)

	remaining, err := ledger.Debit(context.Background(), "t1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	remaining, err = ledger.Debit(context.Background(), "t1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)
}

func TestDebitExceeded(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	seedSub(repo, "t1", 10, 10)
	ledger := NewLedger(repo)

	_, err := ledger.Debit(context.Background(), "t1", 1)
	require.Error(t, err)
	assert.True(t, IsQuotaExceeded(err))

	var qerr QuotaExceededError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "t1", qerr.TenantID)
	assert.Equal(t, int64(10), qerr.Allocated)
	assert.Equal(t, int64(10), qerr.Used)

	// 台账保持不变
	assert.Equal(t, int64(10), repo.subs["t1"].TokensUsed)
}

func TestDebitNeverOvershoots(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	seedSub(repo, "t1", 5, 4)
	ledger := NewLedger(repo)

	// 剩 1 时尝试扣 3：必须整体拒绝，而不是扣到上限
	_, err := ledger.Debit(context.Background(), "t1", 3)
	assert.True(t, IsQuotaExceeded(err))
	assert.Equal(t, int64(4), repo.subs["t1"].TokensUsed)
}

func TestDebitInvalidAmount(t *testing.T) {
	ledger := NewLedger(newFakeSubscriptionRepo())

	_, err := ledger.Debit(context.Background(), "t1", 0)
	require.Error(t, err)
	assert.False(t, IsQuotaExceeded(err))

	_, err = ledger.Debit(context.Background(), "t1", -5)
	require.Error(t, err)
}

func TestDebitRepoError(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.failErr = errors.New("connection reset")
	ledger := NewLedger(repo)

	_, err := ledger.Debit(context.Background(), "t1", 1)
	require.Error(t, err)
	assert.False(t, IsQuotaExceeded(err))
}

func TestProvision(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	ledger := NewLedger(repo)

	sub, err := ledger.Provision(context.Background(), "t1", "pro", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), sub.TokensAllocated)
	assert.Equal(t, int64(0), sub.TokensUsed)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.NotNil(t, repo.subs["t1"])
}

func TestIsQuotaExceeded(t *testing.T) {
	assert.False(t, IsQuotaExceeded(nil))
	assert.False(t, IsQuotaExceeded(errors.New("other")))
	assert.True(t, IsQuotaExceeded(QuotaExceededError{TenantID: "t1"}))
}
