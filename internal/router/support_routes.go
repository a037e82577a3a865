// Package router 提供 HTTP 路由注册
// 本文件定义客服房间相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterSupportRoutes 注册客服房间相关路由（需要认证）
// 覆盖问卷派生、接入/拒绝、会话消息与结束的完整生命周期
func (rt *Router) RegisterSupportRoutes(rg *gin.RouterGroup) {
	supportGroup := rg.Group("/support")
	{
		// ===== 成员侧 =====
		supportGroup.POST("/createQuestion", rt.handlers.Support.CreateQuestion) // 提交问卷并发起会话
		supportGroup.GET("/memberRoom", rt.handlers.Support.GetMemberRoom)       // 获取进行中的会话
		supportGroup.GET("/roomInfo", rt.handlers.Support.GetRoomInfo)           // 获取房间信息

		// ===== 管理员侧 =====
		supportGroup.GET("/waitingList", rt.handlers.Support.GetWaitingList) // 等待队列
		supportGroup.POST("/claimRoom", rt.handlers.Support.ClaimRoom)       // 认领房间
		supportGroup.POST("/rejectRoom", rt.handlers.Support.RejectRoom)     // 拒绝房间

		// ===== 双方共用 =====
		supportGroup.POST("/sendMessage", rt.handlers.Support.SendMessage) // 发送消息
		supportGroup.POST("/markRead", rt.handlers.Support.MarkRead)       // 标记已读
		supportGroup.POST("/endRoom", rt.handlers.Support.EndRoom)         // 结束会话
	}
}
