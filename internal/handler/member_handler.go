// Package handler 提供 HTTP 请求处理器
// 本文件处理成员查询相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/pkg/errorx"
)

// MemberHandler 成员查询请求处理器
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler 创建成员查询处理器实例
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// GetMemberInfo 获取成员展示信息
// GET /member/info?uuid=xxx
// 响应: respond.MemberRespond
func (h *MemberHandler) GetMemberInfo(c *gin.Context) {
	uuid := c.Query("uuid")
	if uuid == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.memberSvc.GetMemberInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetOnlineMembers 获取当前在线成员列表
// GET /member/onlineList
// 响应: []string
func (h *MemberHandler) GetOnlineMembers(c *gin.Context) {
	HandleSuccess(c, h.memberSvc.GetOnlineMembers())
}
