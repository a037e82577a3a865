// Package router 提供 HTTP 路由注册
// 本文件定义成员查询相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMemberRoutes 注册成员查询相关路由（需要认证）
func (rt *Router) RegisterMemberRoutes(rg *gin.RouterGroup) {
	memberGroup := rg.Group("/member")
	{
		memberGroup.GET("/info", rt.handlers.Member.GetMemberInfo)          // 成员展示信息
		memberGroup.GET("/onlineList", rt.handlers.Member.GetOnlineMembers) // 在线成员列表
	}
}
