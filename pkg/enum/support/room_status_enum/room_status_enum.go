// Package room_status_enum 客服房间状态枚举
// 状态机：WAITING -> ACTIVE -> ENDED；WAITING -> REJECTED（终态）
package room_status_enum

const (
	Waiting  int8 = iota // 等待管理员接入
	Active               // 会话进行中
	Ended                // 已结束（终态）
	Rejected             // 已被管理员拒绝（终态）
)

// IsTerminal 判断是否为终态
func IsTerminal(status int8) bool {
	return status == Ended || status == Rejected
}
