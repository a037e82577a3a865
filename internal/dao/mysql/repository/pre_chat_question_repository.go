package repository

import (
	"fitmall_chat_server/internal/model"

	"gorm.io/gorm"
)

type preChatQuestionRepository struct {
	db *gorm.DB
}

// NewPreChatQuestionRepository 创建前置问卷 Repository
func NewPreChatQuestionRepository(db *gorm.DB) PreChatQuestionRepository {
	return &preChatQuestionRepository{db: db}
}

// Create 创建问卷
func (r *preChatQuestionRepository) Create(question *model.PreChatQuestion) error {
	if err := r.db.Create(question).Error; err != nil {
		return wrapDBError(err, "创建前置问卷")
	}
	return nil
}

// UpdateRoomUuid 回填问卷派生的客服房间uuid
func (r *preChatQuestionRepository) UpdateRoomUuid(questionUuid, roomUuid string) error {
	err := r.db.Model(&model.PreChatQuestion{}).
		Where("uuid = ?", questionUuid).
		Update("room_uuid", roomUuid).Error
	if err != nil {
		return wrapDBErrorf(err, "回填问卷房间 uuid=%s", questionUuid)
	}
	return nil
}

// FindByMemberId 查找成员历史问卷
func (r *preChatQuestionRepository) FindByMemberId(memberId string) ([]model.PreChatQuestion, error) {
	var questions []model.PreChatQuestion
	err := r.db.Where("member_id = ?", memberId).
		Order("created_at DESC").Find(&questions).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询成员问卷 member_id=%s", memberId)
	}
	return questions, nil
}

// SoftDelete 软删除问卷
func (r *preChatQuestionRepository) SoftDelete(questionUuid string) error {
	err := r.db.Where("uuid = ?", questionUuid).
		Delete(&model.PreChatQuestion{}).Error
	if err != nil {
		return wrapDBErrorf(err, "软删除问卷 uuid=%s", questionUuid)
	}
	return nil
}
