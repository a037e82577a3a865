package respond

import "fitmall_chat_server/pkg/pagination"

// SupportRoomRespond 客服房间信息响应
// 使用位置:
//   - internal/service/support/service.go: GetWaitingList / GetMemberRoom
type SupportRoomRespond struct {
	RoomId         string `json:"room_id"`
	MemberId       string `json:"member_id"`
	AdminId        string `json:"admin_id"`
	QuestionType   string `json:"question_type"`
	QuestionDetail string `json:"question_detail"`
	Status         int8   `json:"status"`
	CreatedAt      string `json:"created_at"`
	StartedAt      string `json:"started_at"`
	EndedAt        string `json:"ended_at"`
	RejectedAt     string `json:"rejected_at"`
	RejectReason   string `json:"reject_reason"`
	Unread         int64  `json:"unread"`
}

// SupportRoomListWrapper 客服房间分页响应
type SupportRoomListWrapper struct {
	List     []SupportRoomRespond `json:"list"`
	PageInfo pagination.PageInfo  `json:"page_info"`
}
