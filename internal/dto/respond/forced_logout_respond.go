package respond

// ForcedLogoutRespond 强制下线推送 (member/<memberId>/logout 通道)
// 使用位置:
//   - internal/service/ban/service.go: RecordBan
type ForcedLogoutRespond struct {
	MemberId string `json:"member_id"`
	Reason   string `json:"reason"`
}
