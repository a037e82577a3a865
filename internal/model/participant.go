package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Participant 聊天室成员行
// (room_uuid, member_id) 至多一条活跃行（left_at 为空）
// 离开后重新加入会产生新行，历史行保留
type Participant struct {
	gorm.Model
	RoomUuid   string       `gorm:"column:room_uuid;index:idx_room_member;type:char(20);not null;comment:聊天室uuid"`
	MemberId   string       `gorm:"column:member_id;index:idx_room_member;type:char(20);not null;comment:成员uuid"`
	Role       int8         `gorm:"column:role;default:1;comment:角色，1.成员，2.管理员，3.创建者"`
	JoinedAt   time.Time    `gorm:"column:joined_at;not null;comment:加入时间"`
	LeftAt     sql.NullTime `gorm:"column:left_at;comment:离开时间，NULL表示仍在室内"`
	LastReadAt sql.NullTime `gorm:"column:last_read_at;comment:已读游标"`
}

func (Participant) TableName() string {
	return "participant"
}
