package model

import (
	"time"
)

// ============================================================================
// 交易类型常量
// ============================================================================

const (
	TransactionTypeCredit = "c" // 入账
	TransactionTypeDebit  = "d" // 出账
)

// IsValidTransactionType 交易类型只允许 c / d
func IsValidTransactionType(tipo string) bool {
	return tipo == TransactionTypeCredit || tipo == TransactionTypeDebit
}

// AccountTransaction 交易流水表
// 只追加，不修改，不删除；金额恒为正数，方向由 tipo 区分
type AccountTransaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID int64     `gorm:"index:idx_account_created;not null" json:"account_id"`
	Valor     int64     `gorm:"not null" json:"valor"`
	Tipo      string    `gorm:"type:varchar(1);not null" json:"tipo"`
	Descricao string    `gorm:"type:varchar(10);not null" json:"descricao"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_account_created" json:"realizada_em"`
}

func (AccountTransaction) TableName() string {
	return "transacoes"
}
