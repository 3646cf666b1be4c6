package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rinhabank/internal/model"
	"rinhabank/internal/repository"
)

// Ledger 账本存储的内存实现
// 与数据库实现遵守同一套契约：ApplyTransaction 对同一账户串行生效，
// 额度判定基于提交时刻的最新余额。供测试与本地联调使用
type Ledger struct {
	mu           sync.Mutex
	accounts     map[int64]*accountState
	snapshotHits int
	applyHits    int

	// Err 非空时所有操作返回该错误，模拟存储不可用
	Err error
}

type accountState struct {
	limite       int64
	saldo        int64
	transactions []model.StatementEntry
}

func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[int64]*accountState),
	}
}

// CreateAccount 开户，初始余额为 0
func (l *Ledger) CreateAccount(id int64, limite int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[id] = &accountState{limite: limite}
}

func (l *Ledger) GetSnapshot(ctx context.Context, accountID int64) (model.AccountSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshotHits++
	if l.Err != nil {
		return model.AccountSnapshot{}, l.Err
	}

	account, ok := l.accounts[accountID]
	if !ok {
		return model.AccountSnapshot{}, repository.ErrAccountNotFound
	}
	return model.AccountSnapshot{Limite: account.limite, Saldo: account.saldo}, nil
}

func (l *Ledger) ApplyTransaction(ctx context.Context, accountID int64, valor int64, tipo, descricao string) (model.TransactionResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.applyHits++
	if l.Err != nil {
		return model.TransactionResult{}, l.Err
	}

	if !model.IsValidTransactionType(tipo) {
		return model.TransactionResult{}, fmt.Errorf("%w: %s", repository.ErrInvalidTransactionType, tipo)
	}

	account, ok := l.accounts[accountID]
	if !ok {
		return model.TransactionResult{}, repository.ErrAccountNotFound
	}

	newSaldo := account.saldo + valor
	if tipo == model.TransactionTypeDebit {
		newSaldo = account.saldo - valor
		if newSaldo < -account.limite {
			return model.TransactionResult{}, repository.ErrLimitExceeded
		}
	}

	account.saldo = newSaldo
	account.transactions = append(account.transactions, model.StatementEntry{
		Valor:       valor,
		Tipo:        tipo,
		Descricao:   descricao,
		RealizadaEm: time.Now().UTC(),
	})

	return model.TransactionResult{Limite: account.limite, Saldo: newSaldo}, nil
}

func (l *Ledger) ListRecent(ctx context.Context, accountID int64, n int) ([]model.StatementEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}

	account, ok := l.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	// 新的在前；写入时间戳在同一刻也按写入序的倒序返回
	entries := make([]model.StatementEntry, 0, n)
	for i := len(account.transactions) - 1; i >= 0 && len(entries) < n; i-- {
		entries = append(entries, account.transactions[i])
	}
	return entries, nil
}

// Saldo 当前余额（测试断言用）
func (l *Ledger) Saldo(accountID int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if account, ok := l.accounts[accountID]; ok {
		return account.saldo
	}
	return 0
}

// TransactionCount 已落账的交易笔数（测试断言用）
func (l *Ledger) TransactionCount(accountID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if account, ok := l.accounts[accountID]; ok {
		return len(account.transactions)
	}
	return 0
}

// ApplyHits ApplyTransaction 被调用的次数（测试断言用）
func (l *Ledger) ApplyHits() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyHits
}

// SnapshotHits GetSnapshot 被调用的次数（测试断言用）
func (l *Ledger) SnapshotHits() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotHits
}
