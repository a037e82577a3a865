package model

import (
	"time"

	"gorm.io/gorm"
)

// SupportMessage 客服房间消息
// 发出后不可变，仅已读标记与软删标记可翻转
// 历史排序以 (send_at, uuid) 为唯一事实来源
// 已读标记为两方会话的二元方案：读方将对方全部未读消息翻转为已读
type SupportMessage struct {
	gorm.Model
	Uuid      int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`
	RoomUuid  string    `gorm:"column:room_uuid;index;type:char(20);not null;comment:所属客服房间uuid"`
	SendId    string    `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`
	Content   string    `gorm:"column:content;type:TEXT;comment:消息内容"`
	Kind      int8      `gorm:"column:kind;not null;comment:消息种类，0.聊天，1.系统，2.入室，3.离室"`
	SendAt    time.Time `gorm:"column:send_at;index;not null;comment:发送时间"`
	ReadFlag  int8      `gorm:"column:read_flag;default:0;comment:已读标记，0.未读，1.已读"`
	IsDeleted int8      `gorm:"column:is_deleted;default:0;comment:软删标记，0.正常，1.已删除"`
}

func (SupportMessage) TableName() string {
	return "support_message"
}
