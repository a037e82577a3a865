package model

import "gorm.io/gorm"

// PreChatQuestion 客服前置问卷
// 成员发起客服会话前提交，创建后除软删除外只读
type PreChatQuestion struct {
	gorm.Model
	Uuid           string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:问卷唯一id"`
	MemberId       string `gorm:"column:member_id;index;type:char(20);not null;comment:提交成员uuid"`
	QuestionType   string `gorm:"column:question_type;type:varchar(30);not null;comment:问题类型"`
	QuestionDetail string `gorm:"column:question_detail;type:varchar(500);comment:问题详情"`
	RoomUuid       string `gorm:"column:room_uuid;index;type:char(20);comment:由该问卷创建的客服房间uuid"`
}

func (PreChatQuestion) TableName() string {
	return "pre_chat_question"
}
