package request

// LeaveMultiRoomRequest 退出多人房间请求
// 使用位置:
//   - internal/handler/multi_room_handler.go: LeaveRoom
//   - internal/service/multiroom/service.go: Leave
type LeaveMultiRoomRequest struct {
	RoomId   string `json:"room_id" binding:"required"`
	MemberId string `json:"member_id" binding:"required"`
}
