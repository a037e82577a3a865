// Package router 提供 HTTP 路由注册
// 本文件定义多人聊天室相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMultiRoomRoutes 注册多人聊天室相关路由（需要认证）
func (rt *Router) RegisterMultiRoomRoutes(rg *gin.RouterGroup) {
	roomGroup := rg.Group("/multiroom")
	{
		// ===== 聊天室基本操作 =====
		roomGroup.POST("/createRoom", rt.handlers.MultiRoom.CreateRoom) // 创建聊天室
		roomGroup.GET("/roomList", rt.handlers.MultiRoom.GetRoomList)   // 聊天室列表
		roomGroup.GET("/roomInfo", rt.handlers.MultiRoom.GetRoomInfo)   // 聊天室详情
		roomGroup.POST("/closeRoom", rt.handlers.MultiRoom.CloseRoom)   // 关闭聊天室

		// ===== 成员进出 =====
		roomGroup.POST("/joinRoom", rt.handlers.MultiRoom.JoinRoom)                 // 加入聊天室
		roomGroup.POST("/leaveRoom", rt.handlers.MultiRoom.LeaveRoom)               // 退出聊天室
		roomGroup.GET("/participantList", rt.handlers.MultiRoom.GetParticipantList) // 活跃成员列表

		// ===== 消息 =====
		roomGroup.POST("/sendMessage", rt.handlers.MultiRoom.SendMessage) // 发送消息
		roomGroup.POST("/markRead", rt.handlers.MultiRoom.MarkRead)       // 推进已读游标
	}
}
