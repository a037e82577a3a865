package request

// MessageListRequest 拉取房间消息历史请求
// 客服房间与多人房间共用
// 使用位置:
//   - internal/handler/message_handler.go: GetSupportMessageList
//   - internal/handler/message_handler.go: GetMultiMessageList
type MessageListRequest struct {
	RoomId string `json:"room_id" form:"room_id" binding:"required"`
	Page   int    `json:"page" form:"page"`
	Size   int    `json:"size" form:"size"`
}
