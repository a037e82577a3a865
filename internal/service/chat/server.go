// Package chat 实现聊天系统的在线路由层
// server.go
// 核心职责：聊天服务器聚合结构和依赖注入
// 封装 Hub、MessageBroker、KafkaClient 等组件，提供统一的生命周期管理
package chat

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/pkg/constants"
)

// ChatServer 聊天服务器聚合结构
// 封装所有在线路由组件，通过依赖注入管理生命周期
type ChatServer struct {
	// Hub 订阅路由表
	Hub *Hub

	// Broker 消息代理，实现 MessageBroker 接口
	// 根据配置可能是 ChannelBroker 或 KafkaBroker
	Broker MessageBroker

	// KafkaClient Kafka 客户端（仅 Kafka 模式使用）
	KafkaClient *KafkaClient

	// cacheService 缓存服务，维护跨实例在线成员集合
	cacheService myredis.AsyncCacheService

	// mode 运行模式: "channel" 或 "kafka"
	mode string
}

// ChatServerConfig 聊天服务器配置
type ChatServerConfig struct {
	Mode         string // "channel" 或 "kafka"
	CacheService myredis.AsyncCacheService
}

// NewChatServer 创建聊天服务器实例
// 根据配置选择 ChannelBroker 或 KafkaBroker
func NewChatServer(cfg ChatServerConfig) *ChatServer {
	cs := &ChatServer{
		Hub:          NewHub(),
		cacheService: cfg.CacheService,
		mode:         cfg.Mode,
	}

	if cfg.Mode == "kafka" {
		// Kafka 模式
		cs.KafkaClient = NewKafkaClient()
		cs.Broker = NewKafkaBroker(cs.Hub, cs.KafkaClient)
	} else {
		// Channel 模式（默认）
		cs.Broker = NewChannelBroker(cs.Hub)
	}

	return cs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (cs *ChatServer) InitKafka() {
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaInit()
	}
}

// Start 启动聊天服务器
func (cs *ChatServer) Start() {
	cs.Broker.Start()
}

// Close 关闭聊天服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaClose()
	}
}

// GetBroker 获取消息代理
func (cs *ChatServer) GetBroker() MessageBroker {
	return cs.Broker
}

// NewClientInit 成员建立 WebSocket 连接时调用
// 升级连接后自动订阅 public、online-users 和本人登出通道，
// 登记在线集合并广播最新在线列表
func (cs *ChatServer) NewClientInit(c *gin.Context, clientId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	cs.Hub.Register(client)
	cs.Hub.Subscribe(constants.ChannelPublic, client)
	cs.Hub.Subscribe(constants.ChannelOnlineUsers, client)
	cs.Hub.Subscribe(constants.MemberLogoutChannel(clientId), client)

	// 在线集合异步落缓存，失败不影响连接
	cs.cacheService.SubmitTask(func() {
		if err := cs.cacheService.AddToSet(context.Background(), constants.ONLINE_MEMBER_SET, clientId); err != nil {
			zap.L().Error(err.Error())
		}
	})

	go client.Read(cs.Hub, cs.onDisconnect)
	go client.Write()
	cs.broadcastOnlineUsers()
	zap.L().Info("ws连接成功", zap.String("client", clientId))
}

// ClientLogout 成员主动登出时调用
func (cs *ChatServer) ClientLogout(clientId string) {
	cs.Hub.mu.RLock()
	client := cs.Hub.online[clientId]
	cs.Hub.mu.RUnlock()
	if client != nil {
		// 只关底层连接，SendBack 留给 onDisconnect 在注销后关停
		client.CloseConn()
	}
}

// onDisconnect 连接断开后的统一清理
// 先从 Hub 注销再关停发送通道，扇出不会撞上已关闭通道；
// 之后移出在线集合并广播最新在线列表
func (cs *ChatServer) onDisconnect(client *UserConn) {
	cs.Hub.Unregister(client)
	client.CloseConn()
	client.Shutdown()

	cs.cacheService.SubmitTask(func() {
		if err := cs.cacheService.RemoveFromSet(context.Background(), constants.ONLINE_MEMBER_SET, client.Uuid); err != nil {
			zap.L().Error(err.Error())
		}
	})
	cs.broadcastOnlineUsers()
	zap.L().Info("ws连接断开", zap.String("client", client.Uuid))
}

// broadcastOnlineUsers 把最新在线成员列表广播到 online-users 通道
func (cs *ChatServer) broadcastOnlineUsers() {
	rsp := respond.OnlineUsersRespond{Members: cs.Hub.OnlineMembers()}
	data, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	if err := cs.Broker.Publish(context.Background(), constants.ChannelOnlineUsers, data); err != nil {
		zap.L().Error(err.Error())
	}
}
