// Package repository 提供 Repository 层聚合与构造
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db              *gorm.DB
	Member          MemberRepository
	BanRecord       BanRecordRepository
	PreChatQuestion PreChatQuestionRepository
	SupportRoom     SupportRoomRepository
	SupportMessage  SupportMessageRepository
	MultiRoom       MultiRoomRepository
	Participant     ParticipantRepository
	MultiMessage    MultiMessageRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:              db,
		Member:          NewMemberRepository(db),
		BanRecord:       NewBanRecordRepository(db),
		PreChatQuestion: NewPreChatQuestionRepository(db),
		SupportRoom:     NewSupportRoomRepository(db),
		SupportMessage:  NewSupportMessageRepository(db),
		MultiRoom:       NewMultiRoomRepository(db),
		Participant:     NewParticipantRepository(db),
		MultiMessage:    NewMultiMessageRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
