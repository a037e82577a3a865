package repository

import (
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/enum/message/read_status_enum"
	"fitmall_chat_server/pkg/pagination"

	"gorm.io/gorm"
)

type supportMessageRepository struct {
	db *gorm.DB
}

// NewSupportMessageRepository 创建客服消息 Repository
func NewSupportMessageRepository(db *gorm.DB) SupportMessageRepository {
	return &supportMessageRepository{db: db}
}

// Create 追加消息
func (r *supportMessageRepository) Create(message *model.SupportMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建客服消息")
	}
	return nil
}

// FindByRoomUuid 分页获取房间消息
// 排序 (send_at, uuid) 是消息历史的唯一事实来源；软删消息不出现在历史中
func (r *supportMessageRepository) FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.SupportMessage, int64, error) {
	var messages []model.SupportMessage
	var total int64

	query := r.db.Model(&model.SupportMessage{}).
		Where("room_uuid = ? AND is_deleted = 0", roomUuid)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "统计客服消息 room_uuid=%s", roomUuid)
	}
	if err := query.Order("send_at ASC, uuid ASC").
		Offset(pagination.Offset(page, pageSize)).Limit(pageSize).
		Find(&messages).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "查询客服消息 room_uuid=%s", roomUuid)
	}
	return messages, total, nil
}

// CountUnread 统计读者的未读数（对方发送且未读）
func (r *supportMessageRepository) CountUnread(roomUuid, readerId string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SupportMessage{}).
		Where("room_uuid = ? AND send_id <> ? AND read_flag = ? AND is_deleted = 0",
			roomUuid, readerId, read_status_enum.Unread).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计客服未读消息 room_uuid=%s", roomUuid)
	}
	return count, nil
}

// MarkRead 将对方发送的未读消息全部翻转为已读
// 两方会话的二元已读方案：读方一次性清空对方未读
func (r *supportMessageRepository) MarkRead(roomUuid, readerId string) error {
	err := r.db.Model(&model.SupportMessage{}).
		Where("room_uuid = ? AND send_id <> ? AND read_flag = ?",
			roomUuid, readerId, read_status_enum.Unread).
		Update("read_flag", read_status_enum.Read).Error
	if err != nil {
		return wrapDBErrorf(err, "翻转客服消息已读标记 room_uuid=%s", roomUuid)
	}
	return nil
}

// SoftDelete 软删除单条消息，存储保留（客服留痕）
func (r *supportMessageRepository) SoftDelete(messageUuid int64) error {
	err := r.db.Model(&model.SupportMessage{}).
		Where("uuid = ?", messageUuid).
		Update("is_deleted", 1).Error
	if err != nil {
		return wrapDBErrorf(err, "软删除客服消息 uuid=%d", messageUuid)
	}
	return nil
}
