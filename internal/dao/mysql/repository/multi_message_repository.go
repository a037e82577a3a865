package repository

import (
	"time"

	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/pagination"

	"gorm.io/gorm"
)

type multiMessageRepository struct {
	db *gorm.DB
}

// NewMultiMessageRepository 创建多人聊天室消息 Repository
func NewMultiMessageRepository(db *gorm.DB) MultiMessageRepository {
	return &multiMessageRepository{db: db}
}

// Create 追加消息
func (r *multiMessageRepository) Create(message *model.MultiMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建聊天室消息")
	}
	return nil
}

// FindByRoomUuid 分页获取聊天室消息
// 排序 (send_at, uuid) 与客服消息一致；软删消息不出现在历史中
func (r *multiMessageRepository) FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.MultiMessage, int64, error) {
	var messages []model.MultiMessage
	var total int64

	query := r.db.Model(&model.MultiMessage{}).
		Where("room_uuid = ? AND is_deleted = 0", roomUuid)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "统计聊天室消息 room_uuid=%s", roomUuid)
	}
	if err := query.Order("send_at ASC, uuid ASC").
		Offset(pagination.Offset(page, pageSize)).Limit(pageSize).
		Find(&messages).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "查询聊天室消息 room_uuid=%s", roomUuid)
	}
	return messages, total, nil
}

// CountUnread 统计已读游标之后的消息数
// lastReadAt 为零值时视为从未读过，统计全部他人消息
func (r *multiMessageRepository) CountUnread(roomUuid, memberId string, lastReadAt time.Time) (int64, error) {
	var count int64
	query := r.db.Model(&model.MultiMessage{}).
		Where("room_uuid = ? AND send_id <> ? AND is_deleted = 0", roomUuid, memberId)
	if !lastReadAt.IsZero() {
		query = query.Where("send_at > ?", lastReadAt)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计聊天室未读消息 room_uuid=%s", roomUuid)
	}
	return count, nil
}

// SoftDelete 软删除单条消息，存储保留
func (r *multiMessageRepository) SoftDelete(messageUuid int64) error {
	err := r.db.Model(&model.MultiMessage{}).
		Where("uuid = ?", messageUuid).
		Update("is_deleted", 1).Error
	if err != nil {
		return wrapDBErrorf(err, "软删除聊天室消息 uuid=%d", messageUuid)
	}
	return nil
}
