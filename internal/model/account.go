package model

import (
	"time"
)

// Account 账户表
// limite 为透支额度：余额最多可以负到 -limite，建号后不可修改
type Account struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Limite    int64     `gorm:"not null" json:"limite"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "clientes"
}

// Balance 余额表
// 与账户 1:1，余额只允许通过交易提交路径变更
type Balance struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID int64     `gorm:"uniqueIndex;not null" json:"account_id"`
	Saldo     int64     `gorm:"not null;default:0" json:"saldo"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string {
	return "saldos"
}
