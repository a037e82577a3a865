package repository

import (
	"fitmall_chat_server/internal/model"

	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建成员 Repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByUuid 根据 UUID 查找成员
func (r *memberRepository) FindByUuid(uuid string) (*model.Member, error) {
	var member model.Member
	if err := r.db.Where("uuid = ?", uuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成员 uuid=%s", uuid)
	}
	return &member, nil
}

// FindByUuids 批量根据 UUID 查找成员
func (r *memberRepository) FindByUuids(uuids []string) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.Where("uuid IN ?", uuids).Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "批量查询成员")
	}
	return members, nil
}
