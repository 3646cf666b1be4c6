package admin

import (
	"errors"
	"strconv"

	"rinhabank/internal/repository"
	"rinhabank/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler 管理接口处理器
// 开户走这里；对外协议面上账户是只读的既存实体
type Handler struct {
	accountRepo *repository.AccountRepository
}

func NewHandler(accountRepo *repository.AccountRepository) *Handler {
	return &Handler{accountRepo: accountRepo}
}

// CreateAccountRequest 开户请求
type CreateAccountRequest struct {
	ID     int64 `json:"id" binding:"required,gt=0"`
	Limite int64 `json:"limite" binding:"gte=0"`
}

// CreateAccount 开户，初始余额为 0，额度建号后不可修改
// POST /admin/contas
func (h *Handler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	account, err := h.accountRepo.Create(c.Request.Context(), req.ID, req.Limite)
	if err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			response.Error(c, response.CodeAccountExists, "账户已存在")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"id":     account.ID,
		"limite": account.Limite,
	})
}

// GetAccount 查询账户额度与余额
// GET /admin/contas/:id
func (h *Handler) GetAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id 参数错误")
		return
	}

	snapshot, err := h.accountRepo.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "账户不存在")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"id":     id,
		"limite": snapshot.Limite,
		"saldo":  snapshot.Saldo,
	})
}
