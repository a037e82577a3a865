package request

// RejectRoomRequest 客服拒绝等待房间请求
// 使用位置:
//   - internal/handler/support_handler.go: RejectRoom
//   - internal/service/support/service.go: Reject
type RejectRoomRequest struct {
	RoomId  string `json:"room_id" binding:"required"`
	AdminId string `json:"admin_id" binding:"required"`
	Reason  string `json:"reason"`
}
