// Package room_type_enum 多人聊天室类型枚举
// PRIVATE 类型加入时必须校验密码
package room_type_enum

const (
	Public  int8 = iota // 公开，无需密码
	Private             // 私密，入室需要密码
)
