package request

// WebSocket 指令动作
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// SubscribeRequest 通道订阅指令 (WebSocket)
// 使用位置:
//   - internal/service/chat/conn_manager.go: Read
type SubscribeRequest struct {
	Action  string `json:"action" binding:"required"`
	Channel string `json:"channel" binding:"required"`
}
