package respond

// RoomStatusRespond 房间状态变更推送 (chat/<roomId>/status 通道)
// 使用位置:
//   - internal/service/support/service.go: Claim / Reject / End
//   - internal/service/multiroom/service.go: CloseRoom
type RoomStatusRespond struct {
	RoomId string `json:"room_id"`
	Status int8   `json:"status"`
	Reason string `json:"reason,omitempty"`
}
