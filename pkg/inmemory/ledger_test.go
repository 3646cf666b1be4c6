package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rinhabank/internal/repository"
)

func TestApplyTransactionBasics(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateAccount(1, 100)
	ctx := context.Background()

	result, err := ledger.ApplyTransaction(ctx, 1, 50, "c", "pix")
	if err != nil || result.Saldo != 50 {
		t.Fatalf("result=%+v err=%v", result, err)
	}

	result, err = ledger.ApplyTransaction(ctx, 1, 120, "d", "compra")
	if err != nil || result.Saldo != -70 {
		t.Fatalf("result=%+v err=%v", result, err)
	}

	if _, err = ledger.ApplyTransaction(ctx, 1, 40, "d", "compra"); !errors.Is(err, repository.ErrLimitExceeded) {
		t.Fatalf("err=%v", err)
	}
	if ledger.Saldo(1) != -70 {
		t.Fatalf("被拒交易改了余额: saldo=%d", ledger.Saldo(1))
	}

	if _, err = ledger.ApplyTransaction(ctx, 2, 10, "c", "pix"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("err=%v", err)
	}
}

// 并发提交下余额始终等于按某个顺序串行执行的结果
func TestApplyTransactionConcurrent(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateAccount(1, 0)
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.ApplyTransaction(ctx, 1, 1, "c", "pix"); err != nil {
				t.Errorf("ApplyTransaction err=%v", err)
			}
		}()
	}
	wg.Wait()

	if ledger.Saldo(1) != n {
		t.Fatalf("saldo=%d want=%d", ledger.Saldo(1), n)
	}
	if ledger.TransactionCount(1) != n {
		t.Fatalf("count=%d want=%d", ledger.TransactionCount(1), n)
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateAccount(1, 0)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		if _, err := ledger.ApplyTransaction(ctx, 1, int64(i), "c", "pix"); err != nil {
			t.Fatalf("ApplyTransaction err=%v", err)
		}
	}

	entries, err := ledger.ListRecent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListRecent err=%v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("len=%d", len(entries))
	}
	for i, e := range entries {
		if e.Valor != int64(12-i) {
			t.Fatalf("第 %d 条 valor=%d", i, e.Valor)
		}
	}
}
