package model

import (
	"time"

	"gorm.io/gorm"
)

// MultiMessage 多人聊天室消息
// 与 SupportMessage 同样的排序契约 (send_at, uuid)，种类集合更大
// system_payload 仅系统消息使用，存放结构化 JSON
type MultiMessage struct {
	gorm.Model
	Uuid          int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`
	RoomUuid      string    `gorm:"column:room_uuid;index;type:char(20);not null;comment:所属聊天室uuid"`
	SendId        string    `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`
	Content       string    `gorm:"column:content;type:TEXT;comment:消息内容"`
	Kind          int8      `gorm:"column:kind;not null;comment:消息种类，0.聊天，1.系统，2.入室，3.离室，4.文件，5.图片"`
	SystemPayload string    `gorm:"column:system_payload;type:TEXT;comment:系统消息结构化负载(JSON)"`
	Url           string    `gorm:"column:url;type:char(255);comment:文件/图片url"`
	FileType      string    `gorm:"column:file_type;type:char(50);comment:文件类型"`
	FileName      string    `gorm:"column:file_name;type:varchar(50);comment:文件名"`
	FileSize      string    `gorm:"column:file_size;type:char(20);comment:文件大小"`
	SendAt        time.Time `gorm:"column:send_at;index;not null;comment:发送时间"`
	IsDeleted     int8      `gorm:"column:is_deleted;default:0;comment:软删标记，0.正常，1.已删除"`
}

func (MultiMessage) TableName() string {
	return "multi_message"
}
