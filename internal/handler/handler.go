package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"rinhabank/internal/protocol"
	"rinhabank/internal/repository"
	"rinhabank/internal/service"
)

// Handler 对外协议处理器，持有两个业务操作
type Handler struct {
	statementService   *service.StatementService
	transactionService *service.TransactionService
}

func NewHandler(statementService *service.StatementService, transactionService *service.TransactionService) *Handler {
	return &Handler{
		statementService:   statementService,
		transactionService: transactionService,
	}
}

// Statement 查询对账单
// GET /clientes/:id/extrato
func (h *Handler) Statement(ctx context.Context, req *protocol.Request) (int, string) {
	accountID, err := strconv.ParseInt(req.AccountID, 10, 64)
	if err != nil {
		// 数字串放不进 int64 的账户号视同不存在
		return 404, protocol.EmptyBody
	}

	statement, err := h.statementService.GetStatement(ctx, accountID)
	if err != nil {
		return h.errorStatus(err), protocol.EmptyBody
	}

	body, err := json.Marshal(statement)
	if err != nil {
		log.Printf("[Handler] 序列化对账单失败: %v", err)
		return 500, protocol.EmptyBody
	}
	return 200, string(body)
}

// Transaction 提交交易
// POST /clientes/:id/transacoes
func (h *Handler) Transaction(ctx context.Context, req *protocol.Request) (int, string) {
	accountID, err := strconv.ParseInt(req.AccountID, 10, 64)
	if err != nil {
		return 404, protocol.EmptyBody
	}

	if req.Body == nil {
		return 422, protocol.EmptyBody
	}

	result, err := h.transactionService.Execute(ctx,
		accountID, *req.Body.Valor, *req.Body.Tipo, *req.Body.Descricao)
	if err != nil {
		return h.errorStatus(err), protocol.EmptyBody
	}

	body, err := json.Marshal(result)
	if err != nil {
		log.Printf("[Handler] 序列化交易结果失败: %v", err)
		return 500, protocol.EmptyBody
	}
	return 200, string(body)
}

// errorStatus 业务错误到状态码的映射
// 存储不可用等未知错误一律 500，错误细节只进日志不出响应
func (h *Handler) errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return 404
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, repository.ErrLimitExceeded),
		errors.Is(err, repository.ErrInvalidTransactionType):
		return 422
	default:
		log.Printf("[Handler] 存储访问失败: %v", err)
		return 500
	}
}
