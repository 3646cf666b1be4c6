package repository

import (
	"context"
	"errors"

	"rinhabank/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound        = errors.New("账户不存在")
	ErrAccountExists          = errors.New("账户已存在")
	ErrLimitExceeded          = errors.New("超出透支额度")
	ErrInvalidTransactionType = errors.New("未知交易类型")
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create 开户：账户行与余额行在同一个事务里落库，初始余额为 0
func (r *AccountRepository) Create(ctx context.Context, id int64, limite int64) (*model.Account, error) {
	account := &model.Account{
		ID:     id,
		Limite: limite,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(account)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAccountExists
		}
		return tx.Create(&model.Balance{AccountID: id, Saldo: 0}).Error
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetSnapshot 一次性读出额度与当前余额（clientes 与 saldos 连表）
func (r *AccountRepository) GetSnapshot(ctx context.Context, id int64) (model.AccountSnapshot, error) {
	var snapshot model.AccountSnapshot
	err := r.db.WithContext(ctx).
		Table("clientes").
		Select("clientes.limite AS limite, saldos.saldo AS saldo").
		Joins("JOIN saldos ON saldos.account_id = clientes.id").
		Where("clientes.id = ?", id).
		Take(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.AccountSnapshot{}, ErrAccountNotFound
		}
		return model.AccountSnapshot{}, err
	}
	return snapshot, nil
}
