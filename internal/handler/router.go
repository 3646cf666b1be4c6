package handler

import (
	"context"

	"rinhabank/internal/protocol"
)

const (
	RouteStatement   = "GET /clientes/:id/extrato"
	RouteTransaction = "POST /clientes/:id/transacoes"
)

// Dispatch 按路由键精确匹配分发请求，其余一律 404
// 只看 Route 字段，不做任何副作用
func (h *Handler) Dispatch(ctx context.Context, req *protocol.Request) (int, string) {
	switch req.Route {
	case RouteStatement:
		return h.Statement(ctx, req)
	case RouteTransaction:
		return h.Transaction(ctx, req)
	default:
		return 404, protocol.EmptyBody
	}
}
