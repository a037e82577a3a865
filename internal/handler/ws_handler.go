// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/errorx"
)

// WsHandler WebSocket 连接请求处理器
// 持有聊天服务器引用，负责连接的建立与登出
type WsHandler struct {
	chatServer *chat.ChatServer
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(chatServer *chat.ChatServer) *WsHandler {
	return &WsHandler{chatServer: chatServer}
}

// Login 升级 HTTP 连接为 WebSocket
// GET /ws/login?client_id=xxx
// 功能:
//   - 将 HTTP 连接升级为 WebSocket 连接
//   - 自动订阅 public、online-users 与本人登出通道
//   - 登记在线集合并广播最新在线列表
func (h *WsHandler) Login(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		zap.L().Error("clientId获取失败")
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeInvalidParam,
			"msg":  "clientId获取失败",
		})
		return
	}
	h.chatServer.NewClientInit(c, clientId)
}

// Logout WebSocket 登出
// POST /ws/logout?client_id=xxx
// 功能:
//   - 关闭连接并退订全部通道
//   - 移出在线集合并广播最新在线列表
func (h *WsHandler) Logout(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	h.chatServer.ClientLogout(clientId)
	HandleSuccess(c, nil)
}
