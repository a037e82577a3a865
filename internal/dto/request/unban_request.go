package request

// UnbanRequest 解封成员请求
// 使用位置:
//   - internal/handler/ban_handler.go: Unban
//   - internal/service/ban/service.go: RecordUnban
type UnbanRequest struct {
	MemberId   string `json:"member_id" binding:"required"`
	OperatorId string `json:"operator_id" binding:"required"`
}
