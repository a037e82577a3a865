package request

// EndRoomRequest 结束客服会话请求
// 使用位置:
//   - internal/handler/support_handler.go: EndRoom
//   - internal/service/support/service.go: End
type EndRoomRequest struct {
	RoomId     string `json:"room_id" binding:"required"`
	OperatorId string `json:"operator_id" binding:"required"`
}
