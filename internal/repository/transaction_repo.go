package repository

import (
	"context"

	"rinhabank/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.AccountTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

// ListRecent 最近 n 笔交易，新的在前
// 时间戳在秒内可能撞车，用自增 id 兜底保证稳定的插入序
func (r *TransactionRepository) ListRecent(ctx context.Context, accountID int64, n int) ([]model.StatementEntry, error) {
	var transactions []*model.AccountTransaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	entries := make([]model.StatementEntry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, model.StatementEntry{
			Valor:       t.Valor,
			Tipo:        t.Tipo,
			Descricao:   t.Descricao,
			RealizadaEm: t.CreatedAt,
		})
	}
	return entries, nil
}
