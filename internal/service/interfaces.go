// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/dto/respond"
)

// SupportService 客服房间业务接口
// 覆盖问卷派生、接入/拒绝、会话消息与结束的完整生命周期
type SupportService interface {
	// CreateFromQuestion 提交前置问卷并派生等待中的客服房间
	CreateFromQuestion(req request.CreateQuestionRequest) (*respond.SupportRoomRespond, error)
	// Claim 管理员认领等待中的房间
	Claim(req request.ClaimRoomRequest) (*respond.SupportRoomRespond, error)
	// Reject 管理员拒绝等待中的房间
	Reject(req request.RejectRoomRequest) error
	// SendMessage 在进行中的房间里发送消息
	SendMessage(req request.SendSupportMessageRequest) (*respond.SupportMessageRespond, error)
	// MarkRead 将对方发送的全部未读消息翻转为已读
	MarkRead(req request.MarkReadRequest) error
	// End 结束房间
	End(req request.EndRoomRequest) error
	// GetWaitingList 分页获取等待接入的房间
	GetWaitingList(req request.PageRequest) (*respond.SupportRoomListWrapper, error)
	// GetRoom 获取单个房间信息
	GetRoom(roomId string) (*respond.SupportRoomRespond, error)
	// GetMemberRoom 获取成员当前非终态房间
	GetMemberRoom(memberId string) (*respond.SupportRoomRespond, error)
}

// MultiRoomService 多人聊天室业务接口
type MultiRoomService interface {
	// CreateRoom 创建聊天室
	CreateRoom(req request.CreateMultiRoomRequest) (*respond.MultiRoomRespond, error)
	// Join 加入聊天室
	Join(req request.JoinMultiRoomRequest) (*respond.MultiRoomRespond, error)
	// Leave 退出聊天室
	Leave(req request.LeaveMultiRoomRequest) error
	// SendMessage 在聊天室内发送消息
	SendMessage(req request.SendMultiMessageRequest) (*respond.MultiMessageRespond, error)
	// MarkRead 推进已读游标
	MarkRead(req request.MarkReadRequest) error
	// GetRoomList 分页获取正常状态的聊天室
	GetRoomList(req request.PageRequest) (*respond.MultiRoomListWrapper, error)
	// GetRoomInfo 获取单个聊天室信息
	GetRoomInfo(roomId string) (*respond.MultiRoomRespond, error)
	// GetParticipantList 分页获取聊天室活跃成员
	GetParticipantList(roomId string, req request.PageRequest) (*respond.ParticipantListWrapper, error)
	// CloseRoom 关闭聊天室
	CloseRoom(req request.CloseMultiRoomRequest) error
}

// MessageService 消息历史业务接口
type MessageService interface {
	// GetSupportMessageList 分页获取客服房间消息历史
	GetSupportMessageList(req request.MessageListRequest) (*respond.SupportMessageListWrapper, error)
	// GetMultiMessageList 分页获取聊天室消息历史
	GetMultiMessageList(req request.MessageListRequest) (*respond.MultiMessageListWrapper, error)
	// GetSupportUnread 统计客服房间未读数
	GetSupportUnread(roomId, readerId string) (*respond.UnreadCountRespond, error)
	// GetMultiUnread 统计聊天室未读数
	GetMultiUnread(roomId, memberId string) (*respond.UnreadCountRespond, error)
}

// BanService 封禁业务接口
type BanService interface {
	// IsBanned 封禁判定谓词
	IsBanned(memberId string) (bool, error)
	// RecordBan 封禁成员
	RecordBan(req request.RecordBanRequest) error
	// RecordUnban 解封成员
	RecordUnban(req request.UnbanRequest) error
	// GetBanList 分页获取封禁记录
	GetBanList(req request.PageRequest) (*respond.BanListWrapper, error)
}

// MemberService 成员业务接口
type MemberService interface {
	// GetMemberInfo 获取成员展示信息
	GetMemberInfo(uuid string) (*respond.MemberRespond, error)
	// GetOnlineMembers 获取当前在线成员列表
	GetOnlineMembers() []string
}
