package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// BanRecord 封禁记录
// 归属会员管理域，聊天核心只读取最近一条未解封记录做封禁判定
type BanRecord struct {
	gorm.Model
	MemberId    string       `gorm:"column:member_id;index;type:char(20);not null;comment:被封禁成员uuid"`
	BannedAt    time.Time    `gorm:"column:banned_at;not null;comment:封禁时间"`
	BannedUntil sql.NullTime `gorm:"column:banned_until;comment:封禁截止时间，NULL为永久"`
	Reason      string       `gorm:"column:reason;type:varchar(500);comment:封禁原因"`
	AdminId     string       `gorm:"column:admin_id;type:char(20);comment:操作管理员uuid"`
	AdminRole   int8         `gorm:"column:admin_role;default:0;comment:操作管理员角色码，封禁时点快照"`
	UnbannedAt  sql.NullTime `gorm:"column:unbanned_at;comment:解封时间"`
	UnbannedBy  string       `gorm:"column:unbanned_by;type:char(20);comment:解封管理员uuid"`
}

func (BanRecord) TableName() string {
	return "ban_record"
}

// IsCurrentlyBanned 判定该记录当前是否生效
// 未解封 且（永久封禁 或 截止时间未到）
func (b *BanRecord) IsCurrentlyBanned(now time.Time) bool {
	if b.UnbannedAt.Valid {
		return false
	}
	if !b.BannedUntil.Valid {
		return true
	}
	return now.Before(b.BannedUntil.Time)
}
