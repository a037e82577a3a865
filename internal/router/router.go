// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"fitmall_chat_server/internal/handler"
	"fitmall_chat_server/internal/infrastructure/middleware"
)

// Router 路由管理器
// 持有 Handler 聚合实例，通过依赖注入创建
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 除健康检查外的所有接口都要求 JWT 认证
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	authed := engine.Group("", middleware.JWTAuth())
	rt.RegisterSupportRoutes(authed)   // 客服房间路由
	rt.RegisterMultiRoomRoutes(authed) // 多人聊天室路由
	rt.RegisterMessageRoutes(authed)   // 消息历史路由
	rt.RegisterMemberRoutes(authed)    // 成员查询路由
	rt.RegisterAdminRoutes(authed)     // 管理员路由
	rt.RegisterWebSocketRoutes(authed) // WebSocket 路由
}
