package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rinhabank/internal/admin"
	"rinhabank/internal/config"
	"rinhabank/internal/handler"
	"rinhabank/internal/infrastructure/cache"
	"rinhabank/internal/infrastructure/database"
	"rinhabank/internal/infrastructure/mq"
	"rinhabank/internal/job"
	"rinhabank/internal/repository"
	"rinhabank/internal/server"
	"rinhabank/internal/service"
	"rinhabank/pkg/idgen"

	"github.com/go-redis/redis/v8"
)

func main() {
	configPath := "config/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg := config.LoadConfig(configPath)

	// 初始化 ID 生成器
	idgen.Init(1)

	// 初始化 MySQL
	db := database.InitMySQL(&cfg.MySQL)

	// 初始化 Redis（可选，账户锁用）
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = cache.InitRedis(&cfg.Redis)
	}

	// 初始化 Kafka（可选，账本事件流用）
	eventTopic := ""
	if cfg.Kafka.Enabled {
		mq.InitKafka(&cfg.Kafka)
		defer mq.CloseKafka()
		eventTopic = cfg.Kafka.Topic.LedgerEvents
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动发件箱投递任务
	if cfg.Kafka.Enabled {
		outboxSender := job.NewOutboxSender(db, cfg)
		go outboxSender.Start(ctx)
	}

	// 组装账本服务
	ledger := repository.NewLedgerRepository(db, eventTopic)
	statementService := service.NewStatementService(ledger, cfg.Business.StatementSize)
	transactionService := service.NewTransactionService(ledger, redisClient)
	h := handler.NewHandler(statementService, transactionService)

	// 启动对外 TCP 服务
	ledgerServer := server.New(h, time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := ledgerServer.ListenAndServe(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 启动管理接口
	adminRouter := admin.SetupRouter(db)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Admin.Port)
		log.Printf("[Admin] 管理接口监听 %s", addr)
		if err := adminRouter.Run(addr); err != nil {
			log.Fatalf("管理接口启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 停止接受新连接，取消后台任务
	ledgerServer.Shutdown()
	cancel()

	log.Println("服务已关闭")
}
