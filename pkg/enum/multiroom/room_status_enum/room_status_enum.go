// Package room_status_enum 多人聊天室状态枚举
package room_status_enum

const (
	Active   int8 = iota // 正常
	Closed               // 已关闭
	Archived             // 已归档
)
