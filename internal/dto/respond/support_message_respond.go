package respond

import "fitmall_chat_server/pkg/pagination"

// SupportMessageRespond 客服消息响应
// Uuid 为雪花 id，以字符串下发避免前端 JS 精度丢失
// 使用位置:
//   - internal/service/support/service.go: SendMessage
//   - internal/service/message/service.go: GetSupportMessageList
type SupportMessageRespond struct {
	Uuid     string `json:"uuid"`
	RoomId   string `json:"room_id"`
	SendId   string `json:"send_id"`
	Content  string `json:"content"`
	Kind     int8   `json:"kind"`
	SendAt   string `json:"send_at"`
	ReadFlag int8   `json:"read_flag"`
}

// SupportMessageListWrapper 客服消息分页响应
type SupportMessageListWrapper struct {
	List     []SupportMessageRespond `json:"list"`
	PageInfo pagination.PageInfo     `json:"page_info"`
}
