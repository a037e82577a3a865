package respond

import "fitmall_chat_server/pkg/pagination"

// BanRecordRespond 封禁记录响应
// 使用位置:
//   - internal/service/ban/service.go: GetBanList
type BanRecordRespond struct {
	MemberId     string `json:"member_id"`
	OperatorId   string `json:"operator_id"`
	OperatorRole int8   `json:"operator_role"`
	Reason       string `json:"reason"`
	BannedAt     string `json:"banned_at"`
	BannedUntil  string `json:"banned_until"` // 空串表示永久
	UnbannedAt   string `json:"unbanned_at"`
	Active       bool   `json:"active"`
}

// BanListWrapper 封禁记录分页响应
type BanListWrapper struct {
	List     []BanRecordRespond  `json:"list"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
