package postgres

import (
	"context"

	"gorm.io/gorm"

	"docforge-ai-api/internal/domain/repository"
	"docforge-ai-api/pkg/logger"
)

// TxManager 事务管理器实现
type TxManager struct {
	client *Client
}

// NewTxManager 创建事务管理器
func NewTxManager(client *Client) repository.Transactor {
	return &TxManager{client: client}
}

// WithTransaction 在事务中执行函数
// 事务句柄通过 context 传递，仓储方法经 getDB 自动取用
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "postgres.TxManager.WithTransaction")
	defer span.End()

	// 已在事务中则直接复用，避免嵌套开启
	if tx, ok := ctx.Value(repository.TxKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return m.client.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, repository.TxKey{}, tx)
		if err := fn(txCtx); err != nil {
			logger.Debug(ctx, "transaction rolled back", "error", err)
			return err
		}
		return nil
	})
}

// getDB 从 context 中提取事务句柄，不存在则返回默认连接
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(repository.TxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
