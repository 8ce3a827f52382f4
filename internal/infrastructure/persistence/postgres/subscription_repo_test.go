package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Client{db: db}, mock
}

func TestDebitAppliesGuardedUpdate(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewSubscriptionRepository(client)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "subscriptions" SET`)).
		WithArgs(int64(1), sqlmock.AnyArg(), "t1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "tokens_allocated","tokens_used" FROM "subscriptions"`)).
		WithArgs("t1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"tokens_allocated", "tokens_used"}).AddRow(100, 38))

	remaining, ok, err := repo.Debit(context.Background(), "t1", 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(62), remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitInsufficientBalanceAffectsNoRows(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewSubscriptionRepository(client)

	// 守卫条件不满足：影响行数为 0，不读余额
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "subscriptions" SET`)).
		WithArgs(int64(5), sqlmock.AnyArg(), "t1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	remaining, ok, err := repo.Debit(context.Background(), "t1", 5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTenantNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewSubscriptionRepository(client)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subscriptions"`)).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sub, err := repo.GetByTenant(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}
