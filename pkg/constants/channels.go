// Package constants 定义全局常量
// 本文件定义订阅通道的命名约定
// 前端按字符串路径订阅，路径格式为对外契约，不可改动
package constants

import "fmt"

// 广播通道（topic 语义，一条消息到达全部订阅者）
const (
	ChannelAdminStatus = "admin-status" // 管理员工作台：新工单等待通知
	ChannelOnlineUsers = "online-users" // 全局在线成员列表
	ChannelPublic      = "public"       // 公共广播
)

// RoomChannel 房间消息通道 chat/<roomId>
// 客服房间为两方点对点，多人聊天室为全员广播，通道机制相同
func RoomChannel(roomId string) string {
	return fmt.Sprintf("chat/%s", roomId)
}

// RoomStatusChannel 房间状态变更通道 chat/<roomId>/status
func RoomStatusChannel(roomId string) string {
	return fmt.Sprintf("chat/%s/status", roomId)
}

// MemberLogoutChannel 强制下线通知通道 member/<memberId>/logout
func MemberLogoutChannel(memberId string) string {
	return fmt.Sprintf("member/%s/logout", memberId)
}
