package service

import (
	"context"
	"fmt"
	"time"

	"rinhabank/internal/model"
)

type StatementService struct {
	ledger        Ledger
	statementSize int
}

func NewStatementService(ledger Ledger, statementSize int) *StatementService {
	if statementSize <= 0 {
		statementSize = 10
	}
	return &StatementService{
		ledger:        ledger,
		statementSize: statementSize,
	}
}

// GetStatement 生成对账单：当前额度余额 + 最近的交易
// data_extrato 取构造响应的时刻，与交易时间无关
func (s *StatementService) GetStatement(ctx context.Context, accountID int64) (model.Statement, error) {
	snapshot, err := s.ledger.GetSnapshot(ctx, accountID)
	if err != nil {
		return model.Statement{}, err
	}

	entries, err := s.ledger.ListRecent(ctx, accountID, s.statementSize)
	if err != nil {
		return model.Statement{}, fmt.Errorf("查询交易流水失败: %w", err)
	}
	if entries == nil {
		entries = []model.StatementEntry{}
	}

	return model.Statement{
		Saldo: model.StatementBalance{
			Total:       snapshot.Saldo,
			DataExtrato: time.Now().UTC(),
			Limite:      snapshot.Limite,
		},
		UltimasTransacoes: entries,
	}, nil
}
