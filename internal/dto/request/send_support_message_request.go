package request

// SendSupportMessageRequest 客服房间发送消息请求
// 使用位置:
//   - internal/handler/support_handler.go: SendMessage
//   - internal/service/support/service.go: SendMessage
type SendSupportMessageRequest struct {
	RoomId  string `json:"room_id" binding:"required"`
	SendId  string `json:"send_id" binding:"required"`
	Content string `json:"content" binding:"required"`
	Kind    int8   `json:"kind"`
}
