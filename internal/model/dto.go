package model

import "time"

// AccountSnapshot 账户额度与余额的一致性快照
type AccountSnapshot struct {
	Limite int64 `json:"limite"`
	Saldo  int64 `json:"saldo"`
}

// TransactionResult 交易提交后的额度与余额
type TransactionResult struct {
	Limite int64 `json:"limite"`
	Saldo  int64 `json:"saldo"`
}

// Statement 对账单响应体
type Statement struct {
	Saldo             StatementBalance `json:"saldo"`
	UltimasTransacoes []StatementEntry `json:"ultimas_transacoes"`
}

// StatementBalance 对账单里的余额小节
// DataExtrato 为构造响应时刻，不是任何一笔交易的时间
type StatementBalance struct {
	Total       int64     `json:"total"`
	DataExtrato time.Time `json:"data_extrato"`
	Limite      int64     `json:"limite"`
}

// StatementEntry 对账单里的一笔交易
type StatementEntry struct {
	Valor       int64     `json:"valor"`
	Tipo        string    `json:"tipo"`
	Descricao   string    `json:"descricao"`
	RealizadaEm time.Time `json:"realizada_em"`
}

// LedgerEvent 发到 Kafka 的交易事件
type LedgerEvent struct {
	EventNo     string    `json:"evento_no"`
	AccountID   int64     `json:"cliente_id"`
	Valor       int64     `json:"valor"`
	Tipo        string    `json:"tipo"`
	Descricao   string    `json:"descricao"`
	SaldoApos   int64     `json:"saldo_apos"`
	RealizadaEm time.Time `json:"realizada_em"`
}
