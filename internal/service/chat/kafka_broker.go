// Package chat 实现聊天系统的在线路由层
// kafka_broker.go
// 核心职责：分布式模式消息代理
// 发布的信封写入 Kafka，每个实例的消费协程读回信封后
// 投递给本实例 Hub 的订阅者，实现跨实例扇出
package chat

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"fitmall_chat_server/pkg/errorx"
)

// KafkaBroker 基于 Kafka 的分布式消息代理
type KafkaBroker struct {
	hub    *Hub
	client *KafkaClient
	cancel context.CancelFunc
}

// NewKafkaBroker 创建分布式消息代理
func NewKafkaBroker(hub *Hub, client *KafkaClient) *KafkaBroker {
	return &KafkaBroker{
		hub:    hub,
		client: client,
	}
}

// Publish 向指定通道发布消息
// 信封序列化后写入 Kafka，key 取通道名保证通道内有序
func (b *KafkaBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	env := ChannelEnvelope{Channel: channel, Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "序列化通道信封")
	}
	if err := b.client.SendMessage(ctx, []byte(channel), data); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "写入kafka")
	}
	return nil
}

// Start 启动消费循环
// 读取 Kafka 信封并扇出到本实例 Hub，损坏的信封记日志后跳过
func (b *KafkaBroker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go func() {
		zap.L().Info("kafka broker started")
		for {
			msg, err := b.client.Consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error("kafka read message failed", zap.Error(err))
				continue
			}
			var env ChannelEnvelope
			if err := json.Unmarshal(msg.Value, &env); err != nil {
				zap.L().Error("kafka envelope unmarshal failed", zap.Error(err))
				continue
			}
			b.hub.Deliver(env.Channel, env.Payload)
		}
	}()
}

// Close 停止消费循环
func (b *KafkaBroker) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	zap.L().Info("kafka broker closed")
}
