package request

// CreateMultiRoomRequest 创建多人房间请求
// 使用位置:
//   - internal/handler/multi_room_handler.go: CreateRoom
//   - internal/service/multiroom/service.go: CreateRoom
type CreateMultiRoomRequest struct {
	CreatorId       string `json:"creator_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	MaxParticipants int    `json:"max_participants" binding:"required"`
	RoomType        int8   `json:"room_type"`
	Password        string `json:"password"`
}
