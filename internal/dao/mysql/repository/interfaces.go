// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"fitmall_chat_server/internal/model"
)

// MemberRepository 成员数据访问接口
// 成员的注册/维护归会员子系统，聊天核心只做查询
type MemberRepository interface {
	// FindByUuid 根据 UUID 查找成员
	FindByUuid(uuid string) (*model.Member, error)
	// FindByUuids 批量根据 UUID 查找成员
	FindByUuids(uuids []string) ([]model.Member, error)
}

// BanRecordRepository 封禁记录数据访问接口
type BanRecordRepository interface {
	// FindLatestActiveByMemberId 查找成员最近一条未解封记录
	FindLatestActiveByMemberId(memberId string) (*model.BanRecord, error)
	// Create 写入封禁记录
	Create(record *model.BanRecord) error
	// Unban 回填解封信息，返回受影响行数
	Unban(recordId uint, adminId string, unbannedAt time.Time) (int64, error)
	// GetBanList 分页获取封禁记录
	GetBanList(page, pageSize int) ([]model.BanRecord, int64, error)
}

// PreChatQuestionRepository 前置问卷数据访问接口
type PreChatQuestionRepository interface {
	// Create 创建问卷
	Create(question *model.PreChatQuestion) error
	// UpdateRoomUuid 回填问卷派生的客服房间uuid
	UpdateRoomUuid(questionUuid, roomUuid string) error
	// FindByMemberId 查找成员历史问卷
	FindByMemberId(memberId string) ([]model.PreChatQuestion, error)
	// SoftDelete 软删除问卷
	SoftDelete(questionUuid string) error
}

// SupportRoomRepository 客服房间数据访问接口
// 状态迁移一律使用条件 UPDATE（先写者胜），不做读-改-写
type SupportRoomRepository interface {
	// FindByUuid 根据 UUID 查找房间
	FindByUuid(uuid string) (*model.SupportRoom, error)
	// FindOpenByMemberId 查找成员当前非终态房间（WAITING/ACTIVE）
	FindOpenByMemberId(memberId string) (*model.SupportRoom, error)
	// GetWaitingList 分页获取等待接入的房间
	GetWaitingList(page, pageSize int) ([]model.SupportRoom, int64, error)
	// Create 创建房间
	Create(room *model.SupportRoom) error
	// ClaimWaiting 接入等待中的房间（WAITING -> ACTIVE 的单语句条件更新），返回受影响行数
	ClaimWaiting(uuid, adminId string, startedAt time.Time) (int64, error)
	// RejectWaiting 拒绝等待中的房间（WAITING -> REJECTED），返回受影响行数
	RejectWaiting(uuid, adminId, reason string, rejectedAt time.Time) (int64, error)
	// EndOpen 结束房间（WAITING/ACTIVE -> ENDED），返回受影响行数
	EndOpen(uuid string, endedAt time.Time) (int64, error)
}

// SupportMessageRepository 客服消息数据访问接口
type SupportMessageRepository interface {
	// Create 追加消息
	Create(message *model.SupportMessage) error
	// FindByRoomUuid 分页获取房间消息，排除软删，按 (send_at, uuid) 升序
	FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.SupportMessage, int64, error)
	// CountUnread 统计读者在房间中的未读数（对方发送、read_flag 未读、未软删）
	CountUnread(roomUuid, readerId string) (int64, error)
	// MarkRead 将对方发送的未读消息全部翻转为已读
	MarkRead(roomUuid, readerId string) error
	// SoftDelete 软删除单条消息
	SoftDelete(messageUuid int64) error
}

// MultiRoomRepository 多人聊天室数据访问接口
type MultiRoomRepository interface {
	// FindByUuid 根据 UUID 查找聊天室
	FindByUuid(uuid string) (*model.MultiRoom, error)
	// FindByUuidForUpdate 行锁查找聊天室（入室事务中使用，串行化容量判定）
	FindByUuidForUpdate(uuid string) (*model.MultiRoom, error)
	// GetRoomList 分页获取正常状态的聊天室
	GetRoomList(page, pageSize int) ([]model.MultiRoom, int64, error)
	// Create 创建聊天室
	Create(room *model.MultiRoom) error
	// UpdateStatus 更新聊天室状态
	UpdateStatus(uuid string, status int8) error
	// IncrementMemberCnt 活跃成员数 +1
	IncrementMemberCnt(uuid string) error
	// DecrementMemberCnt 活跃成员数 -1
	DecrementMemberCnt(uuid string) error
}

// ParticipantRepository 聊天室成员行数据访问接口
type ParticipantRepository interface {
	// Create 插入成员行（重新加入产生新行）
	Create(participant *model.Participant) error
	// FindActive 查找成员在室内的活跃行
	FindActive(roomUuid, memberId string) (*model.Participant, error)
	// FindActiveByRoom 查找聊天室全部活跃成员行
	FindActiveByRoom(roomUuid string) ([]model.Participant, error)
	// CountActive 统计聊天室活跃成员数
	CountActive(roomUuid string) (int64, error)
	// MarkLeft 给活跃行盖离开时间戳，返回受影响行数
	MarkLeft(roomUuid, memberId string, leftAt time.Time) (int64, error)
	// UpdateLastReadAt 推进已读游标
	UpdateLastReadAt(roomUuid, memberId string, readAt time.Time) error
}

// MultiMessageRepository 多人聊天室消息数据访问接口
type MultiMessageRepository interface {
	// Create 追加消息
	Create(message *model.MultiMessage) error
	// FindByRoomUuid 分页获取聊天室消息，排除软删，按 (send_at, uuid) 升序
	FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.MultiMessage, int64, error)
	// CountUnread 统计已读游标之后的消息数（排除本人发送与软删）
	// lastReadAt 为零值时统计全部他人消息
	CountUnread(roomUuid, memberId string, lastReadAt time.Time) (int64, error)
	// SoftDelete 软删除单条消息
	SoftDelete(messageUuid int64) error
}
