// Package chat 实现聊天系统的在线路由层
// hub.go
// 核心职责：通道订阅表与在线成员表
// 1. 维护 通道名 -> 订阅连接集合 的映射（广播与点对点共用同一机制）
// 2. 发布时对订阅者做快照扇出，慢订阅者直接丢弃，不阻塞发布方
// 3. 维护在线成员表，供在线徽标查询
package chat

import (
	"sync"

	"go.uber.org/zap"

	"fitmall_chat_server/pkg/constants"
)

// Hub 进程内订阅路由表
// 订阅/退订与发布并发执行，读写锁保证发布观察到一致快照；
// 快照之后新加入的订阅者错过当条消息，符合尽力而为语义
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*UserConn]struct{}
	online   map[string]*UserConn
}

// NewHub 创建 Hub
// Hub 随服务启动显式创建，随服务关闭整体销毁
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*UserConn]struct{}),
		online:   make(map[string]*UserConn),
	}
}

// Register 登记在线连接
// 同一成员重复连接时新连接顶替旧连接
func (h *Hub) Register(client *UserConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.online[client.Uuid] = client
}

// Unregister 注销连接：移出在线表并退订全部通道
// 幂等，断线重复触发无副作用
func (h *Hub) Unregister(client *UserConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.online[client.Uuid]; ok && cur == client {
		delete(h.online, client.Uuid)
	}
	for name, subs := range h.channels {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.channels, name)
		}
	}
}

// Subscribe 订阅通道，重复订阅无副作用
func (h *Hub) Subscribe(channel string, client *UserConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*UserConn]struct{})
		h.channels[channel] = subs
	}
	subs[client] = struct{}{}
}

// Unsubscribe 退订通道，幂等
func (h *Hub) Unsubscribe(channel string, client *UserConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.channels[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Deliver 向通道的当前订阅者扇出一条消息
// 读锁下取快照后逐个非阻塞投递；发送缓冲已满或连接已关停的
// 订阅者丢弃该条，只记日志，不向发布方报错（历史可从消息存储恢复）
func (h *Hub) Deliver(channel string, payload []byte) {
	h.mu.RLock()
	subs := h.channels[channel]
	snapshot := make([]*UserConn, 0, len(subs))
	for client := range subs {
		snapshot = append(snapshot, client)
	}
	h.mu.RUnlock()

	for _, client := range snapshot {
		if !client.TrySend(payload) {
			zap.L().Warn("subscriber unavailable, message dropped",
				zap.String("channel", channel),
				zap.String("client", client.Uuid))
		}
	}
}

// TearDownRoom 拆除房间的两条通道（消息通道与状态通道）
// 房间结束时调用；幂等，通道不存在时无副作用
func (h *Hub) TearDownRoom(roomId string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels, constants.RoomChannel(roomId))
	delete(h.channels, constants.RoomStatusChannel(roomId))
}

// OnlineMembers 返回当前在线成员 uuid 列表
func (h *Hub) OnlineMembers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := make([]string, 0, len(h.online))
	for uuid := range h.online {
		members = append(members, uuid)
	}
	return members
}

// IsOnline 查询成员是否在线
func (h *Hub) IsOnline(memberId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.online[memberId]
	return ok
}
