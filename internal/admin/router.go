package admin

import (
	"rinhabank/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置管理接口路由
func SetupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())

	h := NewHandler(repository.NewAccountRepository(db))

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/contas", h.CreateAccount)
		adminGroup.GET("/contas/:id", h.GetAccount)
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
