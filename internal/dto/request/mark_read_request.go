package request

// MarkReadRequest 标记已读请求
// 客服房间与多人房间共用，reader 为本次标记的阅读方
// 使用位置:
//   - internal/handler/support_handler.go: MarkRead
//   - internal/handler/multi_room_handler.go: MarkRead
type MarkReadRequest struct {
	RoomId   string `json:"room_id" binding:"required"`
	ReaderId string `json:"reader_id" binding:"required"`
}
