// Package router 提供 HTTP 路由注册
// 本文件定义管理员相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理员相关路由（需要认证）
// 这些接口只能由管理员调用
func (rt *Router) RegisterAdminRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	{
		// ===== 封禁管理 =====
		banAdminGroup := adminGroup.Group("/ban")
		{
			banAdminGroup.POST("/recordBan", rt.handlers.Ban.RecordBan) // 封禁成员
			banAdminGroup.POST("/unban", rt.handlers.Ban.Unban)         // 解封成员
			banAdminGroup.GET("/banList", rt.handlers.Ban.GetBanList)   // 封禁记录列表
			banAdminGroup.GET("/check", rt.handlers.Ban.CheckBanned)    // 封禁状态查询
		}
	}
}
