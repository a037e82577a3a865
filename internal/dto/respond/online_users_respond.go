package respond

// OnlineUsersRespond 在线成员列表推送 (online-users 通道)
// 使用位置:
//   - internal/service/chat/server.go: broadcastOnlineUsers
type OnlineUsersRespond struct {
	Members []string `json:"members"`
}
