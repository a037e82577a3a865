package model

import "gorm.io/gorm"

// MultiRoom 多人聊天室
// member_cnt 为活跃成员数缓存，约束 member_cnt <= max_participants
// room_type 为 PRIVATE 时 password_hash 必填，入室校验密码
type MultiRoom struct {
	gorm.Model
	Uuid            string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:聊天室唯一id"`
	Name            string `gorm:"column:name;type:varchar(30);not null;comment:聊天室名称"`
	Description     string `gorm:"column:description;type:varchar(200);comment:聊天室简介"`
	CreatorId       string `gorm:"column:creator_id;index;type:char(20);not null;comment:创建者uuid"`
	MaxParticipants int    `gorm:"column:max_participants;not null;comment:人数上限"`
	MemberCnt       int    `gorm:"column:member_cnt;default:1;comment:当前活跃成员数"`
	Status          int8   `gorm:"column:status;default:0;comment:状态，0.正常，1.已关闭，2.已归档"`
	RoomType        int8   `gorm:"column:room_type;default:0;comment:类型，0.公开，1.私密"`
	PasswordHash    string `gorm:"column:password_hash;type:char(60);comment:入室密码bcrypt哈希"`
}

func (MultiRoom) TableName() string {
	return "multi_room"
}
