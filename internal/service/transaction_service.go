package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rinhabank/internal/infrastructure/lock"
	"rinhabank/internal/model"
	"rinhabank/internal/repository"

	"github.com/go-redis/redis/v8"
)

var ErrValidationFailed = errors.New("交易参数校验失败")

type TransactionService struct {
	ledger Ledger
	rdb    *redis.Client
}

// NewTransactionService 创建交易服务
// rdb 为 nil 时不加分布式锁：正确性由账本存储的行锁保证，
// 分布式锁只用于多实例部署下给同账户热点减少锁等待
func NewTransactionService(ledger Ledger, rdb *redis.Client) *TransactionService {
	return &TransactionService{
		ledger: ledger,
		rdb:    rdb,
	}
}

// Execute 处理一笔交易请求，单遍执行，不重试
//
// 流程：参数校验 -> 查账户快照 -> 借记预检 -> 原子提交
// 预检基于快照，只是提前拒绝明显超限的请求；
// 权威判定在 ApplyTransaction 事务内对最新余额再做一次
func (s *TransactionService) Execute(ctx context.Context, accountID int64, valor int64, tipo, descricao string) (model.TransactionResult, error) {
	if err := validateTransaction(valor, tipo, descricao); err != nil {
		return model.TransactionResult{}, err
	}

	if s.rdb != nil {
		accountLock := lock.NewAccountLock(s.rdb, accountID)
		if err := accountLock.Lock(ctx, 10*time.Millisecond, 50); err != nil {
			return model.TransactionResult{}, fmt.Errorf("获取账户锁失败: %w", err)
		}
		defer accountLock.Unlock(ctx)
	}

	snapshot, err := s.ledger.GetSnapshot(ctx, accountID)
	if err != nil {
		return model.TransactionResult{}, err
	}

	if tipo == model.TransactionTypeDebit && snapshot.Saldo-valor < -snapshot.Limite {
		return model.TransactionResult{}, repository.ErrLimitExceeded
	}

	return s.ledger.ApplyTransaction(ctx, accountID, valor, tipo, descricao)
}

// validateTransaction 交易参数的形状校验，不碰存储
func validateTransaction(valor int64, tipo, descricao string) error {
	if valor <= 0 {
		return fmt.Errorf("%w: valor 必须为正整数", ErrValidationFailed)
	}
	if !model.IsValidTransactionType(tipo) {
		return fmt.Errorf("%w: tipo 只允许 c 或 d", ErrValidationFailed)
	}
	if len(descricao) < 1 || len(descricao) > 10 {
		return fmt.Errorf("%w: descricao 长度必须在 1 到 10 之间", ErrValidationFailed)
	}
	return nil
}
