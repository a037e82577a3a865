// Package read_status_enum 客服消息已读标记枚举
// 仅客服房间使用（两方会话的二元已读标记），多人聊天室走 last_read_at 游标
package read_status_enum

const (
	Unread int8 = iota // 未读
	Read               // 已读
)
