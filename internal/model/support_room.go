package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// SupportRoom 客服房间（一名成员与一名值班管理员的一对一会话）
// 状态机：WAITING -> ACTIVE -> ENDED；WAITING -> REJECTED
// 同一成员同一时刻至多存在一个非终态房间，由 open_flag 唯一索引兜底：
// 非终态时 open_flag 为成员uuid，进入终态置 NULL；房间关闭后消息保留（客服留痕）
type SupportRoom struct {
	gorm.Model
	Uuid           string       `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:房间唯一id"`
	MemberId       string       `gorm:"column:member_id;index;type:char(20);not null;comment:成员uuid"`
	OpenFlag       *string      `gorm:"column:open_flag;uniqueIndex;type:char(20);comment:非终态会话唯一标记，值为成员uuid，终态置NULL"`
	AdminId        string       `gorm:"column:admin_id;index;type:char(20);comment:接入管理员uuid，接入前为空"`
	QuestionType   string       `gorm:"column:question_type;type:varchar(30);not null;comment:问题类型"`
	QuestionDetail string       `gorm:"column:question_detail;type:varchar(500);comment:问题详情"`
	Status         int8         `gorm:"column:status;index;default:0;comment:状态，0.等待，1.进行中，2.已结束，3.已拒绝"`
	StartedAt      sql.NullTime `gorm:"column:started_at;comment:管理员接入时间"`
	EndedAt        sql.NullTime `gorm:"column:ended_at;comment:结束时间"`
	RejectReason   string       `gorm:"column:reject_reason;type:varchar(200);comment:拒绝原因"`
	RejectedAt     sql.NullTime `gorm:"column:rejected_at;comment:拒绝时间"`
}

func (SupportRoom) TableName() string {
	return "support_room"
}
