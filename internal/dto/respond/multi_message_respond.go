package respond

import "fitmall_chat_server/pkg/pagination"

// MultiMessageRespond 多人房间消息响应
// 使用位置:
//   - internal/service/multiroom/service.go: SendMessage
//   - internal/service/message/service.go: GetMultiMessageList
type MultiMessageRespond struct {
	Uuid          string `json:"uuid"`
	RoomId        string `json:"room_id"`
	SendId        string `json:"send_id"`
	Content       string `json:"content"`
	Kind          int8   `json:"kind"`
	SystemPayload string `json:"system_payload,omitempty"`
	Url           string `json:"url,omitempty"`
	FileType      string `json:"file_type,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	FileSize      string `json:"file_size,omitempty"`
	SendAt        string `json:"send_at"`
}

// MultiMessageListWrapper 多人房间消息分页响应
type MultiMessageListWrapper struct {
	List     []MultiMessageRespond `json:"list"`
	PageInfo pagination.PageInfo   `json:"page_info"`
}
