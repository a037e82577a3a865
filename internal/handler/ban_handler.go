// Package handler 提供 HTTP 请求处理器
// 本文件处理封禁管理相关的 API 请求（管理员）
package handler

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/service"
	"fitmall_chat_server/pkg/errorx"
)

// BanHandler 封禁管理请求处理器
type BanHandler struct {
	banSvc service.BanService
}

// NewBanHandler 创建封禁管理处理器实例
func NewBanHandler(banSvc service.BanService) *BanHandler {
	return &BanHandler{banSvc: banSvc}
}

// RecordBan 封禁成员
// POST /admin/ban/recordBan
// 请求体: request.RecordBanRequest
// 响应: nil
func (h *BanHandler) RecordBan(c *gin.Context) {
	var req request.RecordBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.banSvc.RecordBan(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Unban 解封成员
// POST /admin/ban/unban
// 请求体: request.UnbanRequest
// 响应: nil
func (h *BanHandler) Unban(c *gin.Context) {
	var req request.UnbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.banSvc.RecordUnban(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetBanList 分页获取封禁记录
// GET /admin/ban/banList?page=0&size=20
// 查询参数: request.PageRequest
// 响应: respond.BanListWrapper
func (h *BanHandler) GetBanList(c *gin.Context) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.banSvc.GetBanList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CheckBanned 查询成员封禁状态
// GET /admin/ban/check?member_id=xxx
// 响应: {"banned": bool}
func (h *BanHandler) CheckBanned(c *gin.Context) {
	memberId := c.Query("member_id")
	if memberId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	banned, err := h.banSvc.IsBanned(memberId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"banned": banned})
}
