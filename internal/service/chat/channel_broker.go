// Package chat 实现聊天系统的在线路由层
// channel_broker.go
// 核心职责：单机模式消息代理
// 发布的信封经进程内 channel 中转后由消费协程扇出到 Hub，
// 与 Kafka 模式保持相同的投递路径形态，便于两种模式切换
package chat

import (
	"context"

	"go.uber.org/zap"

	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/errorx"
)

// ChannelBroker 基于 Go channel 的单机消息代理
type ChannelBroker struct {
	hub      *Hub
	transmit chan ChannelEnvelope
	done     chan struct{}
}

// NewChannelBroker 创建单机消息代理
func NewChannelBroker(hub *Hub) *ChannelBroker {
	return &ChannelBroker{
		hub:      hub,
		transmit: make(chan ChannelEnvelope, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
	}
}

// Publish 向指定通道发布消息
// 中转通道满时返回 ErrServerBusy，不阻塞业务协程
func (b *ChannelBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	env := ChannelEnvelope{Channel: channel, Payload: payload}
	select {
	case b.transmit <- env:
		return nil
	case <-ctx.Done():
		return errorx.Wrap(ctx.Err(), errorx.CodeServerBusy, "发布消息被取消")
	default:
		zap.L().Warn("channel broker transmit full, message rejected",
			zap.String("channel", channel))
		return errorx.ErrServerBusy
	}
}

// Start 启动消费循环
func (b *ChannelBroker) Start() {
	go func() {
		zap.L().Info("channel broker started")
		for {
			select {
			case env, ok := <-b.transmit:
				if !ok {
					return
				}
				b.hub.Deliver(env.Channel, env.Payload)
			case <-b.done:
				return
			}
		}
	}()
}

// Close 停止消费循环
func (b *ChannelBroker) Close() {
	close(b.done)
	zap.L().Info("channel broker closed")
}
