// Package handler 提供 HTTP 请求处理器
// 本文件处理客服房间相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/pkg/errorx"
)

// SupportHandler 客服房间请求处理器
// 通过构造函数注入 SupportService，遵循依赖倒置原则
type SupportHandler struct {
	supportSvc service.SupportService
}

// NewSupportHandler 创建客服房间处理器实例
func NewSupportHandler(supportSvc service.SupportService) *SupportHandler {
	return &SupportHandler{supportSvc: supportSvc}
}

// CreateQuestion 提交前置问卷并发起客服会话
// POST /support/createQuestion
// 请求体: request.CreateQuestionRequest
// 响应: respond.SupportRoomRespond
func (h *SupportHandler) CreateQuestion(c *gin.Context) {
	var req request.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.CreateFromQuestion(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ClaimRoom 管理员认领等待中的房间
// POST /support/claimRoom
// 请求体: request.ClaimRoomRequest
// 响应: respond.SupportRoomRespond
func (h *SupportHandler) ClaimRoom(c *gin.Context) {
	var req request.ClaimRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.Claim(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RejectRoom 管理员拒绝等待中的房间
// POST /support/rejectRoom
// 请求体: request.RejectRoomRequest
// 响应: nil
func (h *SupportHandler) RejectRoom(c *gin.Context) {
	var req request.RejectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.supportSvc.Reject(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SendMessage 在进行中的房间里发送消息
// POST /support/sendMessage
// 请求体: request.SendSupportMessageRequest
// 响应: respond.SupportMessageRespond
func (h *SupportHandler) SendMessage(c *gin.Context) {
	var req request.SendSupportMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.SendMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 将对方发送的全部未读消息翻转为已读
// POST /support/markRead
// 请求体: request.MarkReadRequest
// 响应: nil
func (h *SupportHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.supportSvc.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// EndRoom 结束客服会话
// POST /support/endRoom
// 请求体: request.EndRoomRequest
// 响应: nil
func (h *SupportHandler) EndRoom(c *gin.Context) {
	var req request.EndRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.supportSvc.End(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetWaitingList 分页获取等待接入的房间（管理员）
// GET /support/waitingList?page=0&size=20
// 查询参数: request.PageRequest
// 响应: respond.SupportRoomListWrapper
func (h *SupportHandler) GetWaitingList(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.supportSvc.GetWaitingList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRoomInfo 获取单个客服房间信息
// GET /support/roomInfo?room_id=xxx
// 响应: respond.SupportRoomRespond
func (h *SupportHandler) GetRoomInfo(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.supportSvc.GetRoom(roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMemberRoom 获取成员当前进行中的客服房间
// GET /support/memberRoom?member_id=xxx
// 响应: respond.SupportRoomRespond
func (h *SupportHandler) GetMemberRoom(c *gin.Context) {
	memberId := c.Query("member_id")
	if memberId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.supportSvc.GetMemberRoom(memberId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
