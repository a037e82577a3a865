// Package message_kind_enum 消息种类枚举
// Chat/File/Image 由客户端发送，System/Join/Leave 由服务端生成
// System 消息可携带结构化负载，其余种类不使用该字段
package message_kind_enum

const (
	Chat   int8 = iota // 普通聊天消息
	System             // 系统消息（可带结构化负载）
	Join               // 入室提示
	Leave              // 离室提示
	File               // 文件消息
	Image              // 图片消息
)
