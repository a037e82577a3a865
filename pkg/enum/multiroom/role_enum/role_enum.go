// Package role_enum 聊天室成员角色枚举
// 每个聊天室有且仅有一个 CREATOR，建室时分配且不可变更
package role_enum

const (
	Member  int8 = 1 // 普通成员
	Admin   int8 = 2 // 管理员
	Creator int8 = 3 // 创建者
)
