package repository

import (
	"time"

	"fitmall_chat_server/internal/model"

	"gorm.io/gorm"
)

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository 创建聊天室成员 Repository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// Create 插入成员行
func (r *participantRepository) Create(participant *model.Participant) error {
	if err := r.db.Create(participant).Error; err != nil {
		return wrapDBError(err, "创建聊天室成员行")
	}
	return nil
}

// FindActive 查找成员在室内的活跃行（left_at 为空）
func (r *participantRepository) FindActive(roomUuid, memberId string) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.Where("room_uuid = ? AND member_id = ? AND left_at IS NULL", roomUuid, memberId).
		First(&participant).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询聊天室成员 room_uuid=%s member_id=%s", roomUuid, memberId)
	}
	return &participant, nil
}

// FindActiveByRoom 查找聊天室全部活跃成员行
func (r *participantRepository) FindActiveByRoom(roomUuid string) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.Where("room_uuid = ? AND left_at IS NULL", roomUuid).
		Order("joined_at ASC").Find(&participants).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询聊天室成员列表 room_uuid=%s", roomUuid)
	}
	return participants, nil
}

// CountActive 统计聊天室活跃成员数
func (r *participantRepository) CountActive(roomUuid string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Participant{}).
		Where("room_uuid = ? AND left_at IS NULL", roomUuid).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计聊天室成员数 room_uuid=%s", roomUuid)
	}
	return count, nil
}

// MarkLeft 给活跃行盖离开时间戳
// 条件更新保证重复离开不会产生第二次效果
func (r *participantRepository) MarkLeft(roomUuid, memberId string, leftAt time.Time) (int64, error) {
	res := r.db.Model(&model.Participant{}).
		Where("room_uuid = ? AND member_id = ? AND left_at IS NULL", roomUuid, memberId).
		Update("left_at", leftAt)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "标记离开聊天室 room_uuid=%s member_id=%s", roomUuid, memberId)
	}
	return res.RowsAffected, nil
}

// UpdateLastReadAt 推进已读游标
func (r *participantRepository) UpdateLastReadAt(roomUuid, memberId string, readAt time.Time) error {
	err := r.db.Model(&model.Participant{}).
		Where("room_uuid = ? AND member_id = ? AND left_at IS NULL", roomUuid, memberId).
		Update("last_read_at", readAt).Error
	if err != nil {
		return wrapDBErrorf(err, "更新已读游标 room_uuid=%s member_id=%s", roomUuid, memberId)
	}
	return nil
}
