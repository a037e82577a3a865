package request

// PageRequest 通用分页请求
// page 从 0 开始计数，size 超出范围时由分页工具归一化
// 使用位置:
//   - internal/handler/support_handler.go: GetWaitingList
//   - internal/handler/multi_room_handler.go: GetRoomList
//   - internal/handler/ban_handler.go: GetBanList
type PageRequest struct {
	Page int `json:"page" form:"page"`
	Size int `json:"size" form:"size"`
}
