package respond

import "fitmall_chat_server/pkg/pagination"

// ParticipantRespond 房间成员信息响应
// 使用位置:
//   - internal/service/multiroom/service.go: GetParticipantList
type ParticipantRespond struct {
	MemberId   string `json:"member_id"`
	Nickname   string `json:"nickname"`
	Avatar     string `json:"avatar"`
	Role       int8   `json:"role"`
	JoinedAt   string `json:"joined_at"`
	LastReadAt string `json:"last_read_at"`
	Online     bool   `json:"online"`
}

// ParticipantListWrapper 房间成员分页响应
type ParticipantListWrapper struct {
	List     []ParticipantRespond `json:"list"`
	PageInfo pagination.PageInfo  `json:"page_info"`
}
