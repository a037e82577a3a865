// Package redis 提供 Redis 缓存操作的封装
// 本文件仅包含 Redis 连接初始化逻辑
package redis

import (
	"strconv"

	"fitmall_chat_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Init 初始化 Redis 连接并返回缓存服务实例
// workerNum/bufferSize 控制异步缓存任务的 Worker 池
func Init(workerNum, bufferSize int) AsyncCacheService {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 15,
	})

	return NewRedisCache(client, workerNum, bufferSize)
}
