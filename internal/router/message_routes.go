// Package router 提供 HTTP 路由注册
// 本文件定义消息历史与未读统计相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息历史相关路由（需要认证）
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.GET("/supportList", rt.handlers.Message.GetSupportMessageList) // 客服房间消息历史
		messageGroup.GET("/multiList", rt.handlers.Message.GetMultiMessageList)     // 聊天室消息历史
		messageGroup.GET("/supportUnread", rt.handlers.Message.GetSupportUnread)    // 客服房间未读数
		messageGroup.GET("/multiUnread", rt.handlers.Message.GetMultiUnread)        // 聊天室未读数
	}
}
