// Package handler 提供 HTTP 请求处理器
// 本文件处理多人聊天室相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/pkg/errorx"
)

// MultiRoomHandler 多人聊天室请求处理器
type MultiRoomHandler struct {
	multiRoomSvc service.MultiRoomService
}

// NewMultiRoomHandler 创建多人聊天室处理器实例
func NewMultiRoomHandler(multiRoomSvc service.MultiRoomService) *MultiRoomHandler {
	return &MultiRoomHandler{multiRoomSvc: multiRoomSvc}
}

// CreateRoom 创建聊天室
// POST /multiroom/createRoom
// 请求体: request.CreateMultiRoomRequest
// 响应: respond.MultiRoomRespond
func (h *MultiRoomHandler) CreateRoom(c *gin.Context) {
	var req request.CreateMultiRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.multiRoomSvc.CreateRoom(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinRoom 加入聊天室
// POST /multiroom/joinRoom
// 请求体: request.JoinMultiRoomRequest
// 响应: respond.MultiRoomRespond
func (h *MultiRoomHandler) JoinRoom(c *gin.Context) {
	var req request.JoinMultiRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.multiRoomSvc.Join(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveRoom 退出聊天室
// POST /multiroom/leaveRoom
// 请求体: request.LeaveMultiRoomRequest
// 响应: nil
func (h *MultiRoomHandler) LeaveRoom(c *gin.Context) {
	var req request.LeaveMultiRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.multiRoomSvc.Leave(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SendMessage 在聊天室内发送消息
// POST /multiroom/sendMessage
// 请求体: request.SendMultiMessageRequest
// 响应: respond.MultiMessageRespond
func (h *MultiRoomHandler) SendMessage(c *gin.Context) {
	var req request.SendMultiMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.multiRoomSvc.SendMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 推进已读游标
// POST /multiroom/markRead
// 请求体: request.MarkReadRequest
// 响应: nil
func (h *MultiRoomHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.multiRoomSvc.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetRoomList 分页获取正常状态的聊天室
// GET /multiroom/roomList?page=0&size=20
// 查询参数: request.PageRequest
// 响应: respond.MultiRoomListWrapper
func (h *MultiRoomHandler) GetRoomList(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.multiRoomSvc.GetRoomList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRoomInfo 获取单个聊天室信息
// GET /multiroom/roomInfo?room_id=xxx
// 响应: respond.MultiRoomRespond
func (h *MultiRoomHandler) GetRoomInfo(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.multiRoomSvc.GetRoomInfo(roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetParticipantList 分页获取聊天室活跃成员
// GET /multiroom/participantList?room_id=xxx&page=0&size=20
// 响应: respond.ParticipantListWrapper
func (h *MultiRoomHandler) GetParticipantList(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.multiRoomSvc.GetParticipantList(roomId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CloseRoom 关闭聊天室
// POST /multiroom/closeRoom
// 请求体: request.CloseMultiRoomRequest
// 响应: nil
func (h *MultiRoomHandler) CloseRoom(c *gin.Context) {
	var req request.CloseMultiRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.multiRoomSvc.CloseRoom(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
