// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"fitmall_chat_server/internal/dao/mysql/repository"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/infrastructure/sms"
	"fitmall_chat_server/internal/service/ban"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/internal/service/member"
	"fitmall_chat_server/internal/service/message"
	"fitmall_chat_server/internal/service/multiroom"
	"fitmall_chat_server/internal/service/support"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	Support   SupportService   // 客服房间 Service
	MultiRoom MultiRoomService // 多人聊天室 Service
	Message   MessageService   // 消息历史 Service
	Ban       BanService       // 封禁 Service
	Member    MemberService    // 成员 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存、聊天服务器和短信服务
//  2. 先创建 Ban Service，作为门禁谓词注入房间类 Service
//  3. 返回 Services 聚合
func NewServices(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	chatServer *chat.ChatServer, smsService sms.SmsService) *Services {
	broker := chatServer.GetBroker()
	hub := chatServer.Hub

	banSvc := ban.NewBanService(repos, cacheService, broker, smsService)
	supportSvc := support.NewSupportService(repos, cacheService, broker, hub, banSvc)
	multiRoomSvc := multiroom.NewMultiRoomService(repos, cacheService, broker, hub, hub, banSvc)
	messageSvc := message.NewMessageService(repos, cacheService)
	memberSvc := member.NewMemberService(repos, hub)

	return &Services{
		Support:   supportSvc,
		MultiRoom: multiRoomSvc,
		Message:   messageSvc,
		Ban:       banSvc,
		Member:    memberSvc,
	}
}
