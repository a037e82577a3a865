package respond

import "fitmall_chat_server/pkg/pagination"

// MultiRoomRespond 多人房间信息响应
// 私密房间只暴露是否有密码，不回传散列
// 使用位置:
//   - internal/service/multiroom/service.go: GetRoomList / GetRoomInfo
type MultiRoomRespond struct {
	RoomId          string `json:"room_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	CreatorId       string `json:"creator_id"`
	MaxParticipants int    `json:"max_participants"`
	MemberCnt       int    `json:"member_cnt"`
	Status          int8   `json:"status"`
	RoomType        int8   `json:"room_type"`
	HasPassword     bool   `json:"has_password"`
	CreatedAt       string `json:"created_at"`
}

// MultiRoomListWrapper 多人房间分页响应
type MultiRoomListWrapper struct {
	List     []MultiRoomRespond  `json:"list"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
