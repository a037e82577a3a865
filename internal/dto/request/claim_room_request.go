package request

// ClaimRoomRequest 客服认领等待房间请求
// 使用位置:
//   - internal/handler/support_handler.go: ClaimRoom
//   - internal/service/support/service.go: Claim
type ClaimRoomRequest struct {
	RoomId  string `json:"room_id" binding:"required"`
	AdminId string `json:"admin_id" binding:"required"`
}
