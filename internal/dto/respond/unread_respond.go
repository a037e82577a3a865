package respond

// UnreadCountRespond 房间未读数响应
// 使用位置:
//   - internal/service/message/service.go: GetSupportUnread / GetMultiUnread
type UnreadCountRespond struct {
	RoomId string `json:"room_id"`
	Unread int64  `json:"unread"`
}
