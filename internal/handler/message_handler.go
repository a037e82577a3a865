// Package handler 提供 HTTP 请求处理器
// 本文件处理消息历史与未读统计相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/pkg/errorx"
)

// MessageHandler 消息历史请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息历史处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// GetSupportMessageList 分页获取客服房间消息历史
// GET /message/supportList?room_id=xxx&page=0&size=20
// 查询参数: request.MessageListRequest
// 响应: respond.SupportMessageListWrapper
func (h *MessageHandler) GetSupportMessageList(c *gin.Context) {
	var req request.MessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.GetSupportMessageList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMultiMessageList 分页获取聊天室消息历史
// GET /message/multiList?room_id=xxx&page=0&size=20
// 查询参数: request.MessageListRequest
// 响应: respond.MultiMessageListWrapper
func (h *MessageHandler) GetMultiMessageList(c *gin.Context) {
	var req request.MessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.GetMultiMessageList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetSupportUnread 获取客服房间未读数
// GET /message/supportUnread?room_id=xxx&reader_id=xxx
// 响应: respond.UnreadCountRespond
func (h *MessageHandler) GetSupportUnread(c *gin.Context) {
	roomId := c.Query("room_id")
	readerId := c.Query("reader_id")
	if roomId == "" || readerId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.messageSvc.GetSupportUnread(roomId, readerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMultiUnread 获取聊天室未读数
// GET /message/multiUnread?room_id=xxx&member_id=xxx
// 响应: respond.UnreadCountRespond
func (h *MessageHandler) GetMultiUnread(c *gin.Context) {
	roomId := c.Query("room_id")
	memberId := c.Query("member_id")
	if roomId == "" || memberId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.messageSvc.GetMultiUnread(roomId, memberId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
