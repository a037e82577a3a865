package request

// CloseMultiRoomRequest 关闭多人房间请求
// 仅创建者或平台管理员可操作
// 使用位置:
//   - internal/handler/multi_room_handler.go: CloseRoom
//   - internal/service/multiroom/service.go: CloseRoom
type CloseMultiRoomRequest struct {
	RoomId     string `json:"room_id" binding:"required"`
	OperatorId string `json:"operator_id" binding:"required"`
}
