package request

// JoinMultiRoomRequest 加入多人房间请求
// 使用位置:
//   - internal/handler/multi_room_handler.go: JoinRoom
//   - internal/service/multiroom/service.go: Join
type JoinMultiRoomRequest struct {
	RoomId   string `json:"room_id" binding:"required"`
	MemberId string `json:"member_id" binding:"required"`
	Password string `json:"password"`
}
