package request

// RecordBanRequest 封禁成员请求
// DurationDays 为 0 表示永久封禁
// 使用位置:
//   - internal/handler/ban_handler.go: RecordBan
//   - internal/service/ban/service.go: RecordBan
type RecordBanRequest struct {
	MemberId     string `json:"member_id" binding:"required"`
	OperatorId   string `json:"operator_id" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	DurationDays int    `json:"duration_days"`
}
