package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rinhabank/internal/model"
	"rinhabank/pkg/idgen"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository 账本存储的唯一写入口
// 读余额、记流水、改余额、写发件箱是一个不可分割的工作单元
type LedgerRepository struct {
	db              *gorm.DB
	transactionRepo *TransactionRepository
	outboxRepo      *OutboxRepository
	accountRepo     *AccountRepository
	eventTopic      string
}

// NewLedgerRepository 创建账本存储
// eventTopic 为空时不写发件箱（未启用 Kafka 的部署）
func NewLedgerRepository(db *gorm.DB, eventTopic string) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		transactionRepo: NewTransactionRepository(db),
		outboxRepo:      NewOutboxRepository(db),
		accountRepo:     NewAccountRepository(db),
		eventTopic:      eventTopic,
	}
}

func (r *LedgerRepository) GetSnapshot(ctx context.Context, accountID int64) (model.AccountSnapshot, error) {
	return r.accountRepo.GetSnapshot(ctx, accountID)
}

func (r *LedgerRepository) ListRecent(ctx context.Context, accountID int64, n int) ([]model.StatementEntry, error) {
	return r.transactionRepo.ListRecent(ctx, accountID, n)
}

// ApplyTransaction 提交一笔交易
//
// 余额行加行锁后重读余额再做额度判定，判定通过才记流水、改余额、写发件箱，
// 全部动作同一事务提交。同一账户的并发提交会在行锁上排队，
// 等价于按某个顺序串行执行，不会基于过期余额双双放行。
func (r *LedgerRepository) ApplyTransaction(ctx context.Context, accountID int64, valor int64, tipo, descricao string) (model.TransactionResult, error) {
	if !model.IsValidTransactionType(tipo) {
		return model.TransactionResult{}, fmt.Errorf("%w: %s", ErrInvalidTransactionType, tipo)
	}

	var result model.TransactionResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		var balance model.Balance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", accountID).
			First(&balance).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		newSaldo := balance.Saldo + valor
		if tipo == model.TransactionTypeDebit {
			newSaldo = balance.Saldo - valor
			if newSaldo < -account.Limite {
				return ErrLimitExceeded
			}
		}

		trans := &model.AccountTransaction{
			AccountID: accountID,
			Valor:     valor,
			Tipo:      tipo,
			Descricao: descricao,
		}
		if err := r.transactionRepo.Create(ctx, tx, trans); err != nil {
			return fmt.Errorf("记录流水失败: %w", err)
		}

		err = tx.Model(&model.Balance{}).
			Where("id = ?", balance.ID).
			Update("saldo", newSaldo).Error
		if err != nil {
			return fmt.Errorf("更新余额失败: %w", err)
		}

		if r.eventTopic != "" {
			if err := r.writeEvent(ctx, tx, trans, newSaldo); err != nil {
				return fmt.Errorf("写入消息失败: %w", err)
			}
		}

		result = model.TransactionResult{
			Limite: account.Limite,
			Saldo:  newSaldo,
		}
		return nil
	})
	if err != nil {
		return model.TransactionResult{}, err
	}

	return result, nil
}

// writeEvent 在交易事务内写一条发件箱消息，由 OutboxSender 异步投递
func (r *LedgerRepository) writeEvent(ctx context.Context, tx *gorm.DB, trans *model.AccountTransaction, saldoApos int64) error {
	realizadaEm := trans.CreatedAt
	if realizadaEm.IsZero() {
		realizadaEm = time.Now().UTC()
	}

	event := model.LedgerEvent{
		EventNo:     idgen.GenerateEventNo(),
		AccountID:   trans.AccountID,
		Valor:       trans.Valor,
		Tipo:        trans.Tipo,
		Descricao:   trans.Descricao,
		SaldoApos:   saldoApos,
		RealizadaEm: realizadaEm,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.outboxRepo.Create(ctx, tx, &model.OutboxMessage{
		MessageKey: event.EventNo,
		Topic:      r.eventTopic,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	})
}
