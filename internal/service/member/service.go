// Package member 实现成员查询业务逻辑
// 成员注册与维护归会员子系统，这里只做展示信息读取
package member

import (
	"go.uber.org/zap"

	"fitmall_chat_server/internal/dao/mysql/repository"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/errorx"
)

// memberService 成员业务逻辑实现
type memberService struct {
	repos    *repository.Repositories
	presence chat.PresenceChecker
}

// NewMemberService 构造函数，注入所有依赖
func NewMemberService(repos *repository.Repositories, presence chat.PresenceChecker) *memberService {
	return &memberService{
		repos:    repos,
		presence: presence,
	}
}

// GetMemberInfo 获取成员展示信息，附带在线徽标
func (m *memberService) GetMemberInfo(uuid string) (*respond.MemberRespond, error) {
	member, err := m.repos.Member.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "成员不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.MemberRespond{
		Uuid:      member.Uuid,
		Email:     member.Email,
		Nickname:  member.Nickname,
		Telephone: member.Telephone,
		Avatar:    member.Avatar,
		IsAdmin:   member.IsAdmin,
		Online:    m.presence.IsOnline(member.Uuid),
	}, nil
}

// GetOnlineMembers 获取当前在线成员 uuid 列表
func (m *memberService) GetOnlineMembers() []string {
	return m.presence.OnlineMembers()
}
