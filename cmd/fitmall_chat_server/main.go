package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fitmall_chat_server/internal/config"
	dao "fitmall_chat_server/internal/dao/mysql"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/handler"
	"fitmall_chat_server/internal/https_server"
	"fitmall_chat_server/internal/infrastructure/logger"
	"fitmall_chat_server/internal/infrastructure/sms"
	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/util/jwt"
	"fitmall_chat_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis（异步缓存 Worker 池）
	cacheService := myredis.Init(4, 256)
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与雪花节点初始化成功")

	// 6. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}

	// 7. 初始化 ChatServer（根据配置选择 Channel 或 Kafka 模式）
	chatServer := chat.NewChatServer(chat.ChatServerConfig{
		Mode:         conf.KafkaConfig.MessageMode,
		CacheService: cacheService,
	})
	if conf.KafkaConfig.MessageMode == "kafka" {
		chatServer.InitKafka()
	}
	chatServer.Start()
	zap.L().Info("ChatServer 初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 8. 初始化 SMS Service
	smsService, err := sms.Init(cacheService)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	zap.L().Info("SMS Service 初始化成功")

	// 9. 初始化 Service 层与 Handler 层 (依赖注入)
	services := service.NewServices(repos, cacheService, chatServer, smsService)
	handlers := handler.NewHandlers(services, chatServer)
	zap.L().Info("Service/Handler 层初始化成功")

	// 10. 初始化 HTTP 服务器并启动
	engine := https_server.Init(handlers)
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("HTTP 服务器已启动", zap.String("host", host), zap.Int("port", port))

	// 信号监听，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
