package service

import (
	"context"

	"rinhabank/internal/model"
)

// Ledger 账本存储接口，业务层只通过它读写持久状态
// 由 repository.LedgerRepository 实现；测试里用内存假实现
type Ledger interface {
	// GetSnapshot 读取账户额度与余额的一致性快照
	GetSnapshot(ctx context.Context, accountID int64) (model.AccountSnapshot, error)
	// ApplyTransaction 原子提交一笔交易并返回提交后的额度与余额
	ApplyTransaction(ctx context.Context, accountID int64, valor int64, tipo, descricao string) (model.TransactionResult, error)
	// ListRecent 最近 n 笔交易，新的在前
	ListRecent(ctx context.Context, accountID int64, n int) ([]model.StatementEntry, error)
}
