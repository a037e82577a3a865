// Package chat 实现聊天系统的在线路由层
// conn_manager.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 2. 读协程解析前端的订阅/退订指令并操作 Hub
// 3. 写协程把 Hub 扇出的消息推送给前端
package chat

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fitmall_chat_server/internal/dto/request"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserConn 单个成员的 WebSocket 连接
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan []byte // 给前端

	mu        sync.Mutex // 保护 closed 与 SendBack 的关闭
	closed    bool
	closeOnce sync.Once
}

// Read 读取前端发来的订阅指令
// 连接出错即退出，由 server 的 onDisconnect 做统一清理
func (c *UserConn) Read(hub *Hub, onDisconnect func(*UserConn)) {
	defer onDisconnect(c)
	for {
		_, jsonMessage, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws read closed", zap.String("client", c.Uuid), zap.Error(err))
			return
		}
		var req request.SubscribeRequest
		if err := json.Unmarshal(jsonMessage, &req); err != nil {
			zap.L().Error("subscribe request unmarshal failed", zap.Error(err))
			continue
		}
		switch req.Action {
		case request.ActionSubscribe:
			hub.Subscribe(req.Channel, c)
		case request.ActionUnsubscribe:
			hub.Unsubscribe(req.Channel, c)
		default:
			zap.L().Warn("unknown ws action", zap.String("action", req.Action))
		}
	}
}

// Write 从 SendBack 通道读取消息推送给前端
func (c *UserConn) Write() {
	for message := range c.SendBack { // 阻塞状态
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error(err.Error())
			return // 直接断开websocket
		}
	}
}

// TrySend 非阻塞投递一条消息
// 连接已关停或发送缓冲已满时返回 false，消息丢弃
func (c *UserConn) TrySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendBack <- payload:
		return true
	default:
		return false
	}
}

// CloseConn 关闭底层连接，触发读协程退出，幂等
// SendBack 不在这里关闭：连接此刻可能仍在 Hub 订阅表内，
// 必须等 Unregister 之后由 Shutdown 关闭，投递才不会撞上已关闭通道
func (c *UserConn) CloseConn() {
	c.closeOnce.Do(func() {
		if c.Conn == nil {
			return
		}
		if err := c.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

// Shutdown 关停发送通道，写协程随之退出，幂等
// 只能在连接已从 Hub 注销之后调用
func (c *UserConn) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.SendBack)
}
