// Package chat 实现聊天系统的在线路由层
// broker.go
// 核心职责：定义消息代理接口
// 抽象通道消息的传输路径，支持 Kafka 和 Channel 两种实现
package chat

import (
	"context"
	"encoding/json"
)

// ChannelEnvelope 通道消息信封
// 业务层发布的载荷连同目标通道名一起传输，
// 消费端按通道名投递给本地订阅者
type ChannelEnvelope struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

// RoomCloser 房间通道拆除能力
// Hub 实现此接口，业务层在房间终结时拆除订阅
type RoomCloser interface {
	TearDownRoom(roomId string)
}

// PresenceChecker 在线状态查询能力
// Hub 实现此接口，业务层用于填充在线徽标
type PresenceChecker interface {
	IsOnline(memberId string) bool
	OnlineMembers() []string
}

// MessageBroker 定义消息代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
type MessageBroker interface {
	// Publish 向指定通道发布一条消息
	// 发布方不感知订阅者数量，零订阅者时消息静默丢弃
	Publish(ctx context.Context, channel string, payload []byte) error
	// Start 启动消息消费循环
	Start()
	// Close 关闭代理资源
	Close()
}
