package request

// SendMultiMessageRequest 多人房间发送消息请求
// 使用位置:
//   - internal/handler/multi_room_handler.go: SendMessage
//   - internal/service/multiroom/service.go: SendMessage
type SendMultiMessageRequest struct {
	RoomId   string `json:"room_id" binding:"required"`
	SendId   string `json:"send_id" binding:"required"`
	Content  string `json:"content"`
	Kind     int8   `json:"kind"`
	Url      string `json:"url"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
	FileSize string `json:"file_size"`
}
