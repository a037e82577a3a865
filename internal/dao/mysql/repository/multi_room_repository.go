package repository

import (
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/enum/multiroom/room_status_enum"
	"fitmall_chat_server/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type multiRoomRepository struct {
	db *gorm.DB
}

// NewMultiRoomRepository 创建多人聊天室 Repository
func NewMultiRoomRepository(db *gorm.DB) MultiRoomRepository {
	return &multiRoomRepository{db: db}
}

// FindByUuid 根据 UUID 查找聊天室
func (r *multiRoomRepository) FindByUuid(uuid string) (*model.MultiRoom, error) {
	var room model.MultiRoom
	if err := r.db.Where("uuid = ?", uuid).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询聊天室 uuid=%s", uuid)
	}
	return &room, nil
}

// FindByUuidForUpdate 行锁查找聊天室
// 入室事务中先锁住房间行，容量判定与成员插入即被串行化，
// 并发入室不会超出上限；sqlite 方言没有行锁语法，单写者模型天然串行
func (r *multiRoomRepository) FindByUuidForUpdate(uuid string) (*model.MultiRoom, error) {
	query := r.db
	if r.db.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room model.MultiRoom
	err := query.Where("uuid = ?", uuid).First(&room).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "锁定聊天室 uuid=%s", uuid)
	}
	return &room, nil
}

// GetRoomList 分页获取正常状态的聊天室
func (r *multiRoomRepository) GetRoomList(page, pageSize int) ([]model.MultiRoom, int64, error) {
	var rooms []model.MultiRoom
	var total int64

	query := r.db.Model(&model.MultiRoom{}).Where("status = ?", room_status_enum.Active)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计聊天室")
	}
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset(page, pageSize)).Limit(pageSize).
		Find(&rooms).Error; err != nil {
		return nil, 0, wrapDBError(err, "查询聊天室列表")
	}
	return rooms, total, nil
}

// Create 创建聊天室
func (r *multiRoomRepository) Create(room *model.MultiRoom) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "创建聊天室")
	}
	return nil
}

// UpdateStatus 更新聊天室状态
func (r *multiRoomRepository) UpdateStatus(uuid string, status int8) error {
	err := r.db.Model(&model.MultiRoom{}).
		Where("uuid = ?", uuid).
		Update("status", status).Error
	if err != nil {
		return wrapDBErrorf(err, "更新聊天室状态 uuid=%s", uuid)
	}
	return nil
}

// IncrementMemberCnt 活跃成员数 +1
func (r *multiRoomRepository) IncrementMemberCnt(uuid string) error {
	err := r.db.Model(&model.MultiRoom{}).
		Where("uuid = ?", uuid).
		Update("member_cnt", gorm.Expr("member_cnt + 1")).Error
	if err != nil {
		return wrapDBErrorf(err, "递增聊天室成员数 uuid=%s", uuid)
	}
	return nil
}

// DecrementMemberCnt 活跃成员数 -1
func (r *multiRoomRepository) DecrementMemberCnt(uuid string) error {
	err := r.db.Model(&model.MultiRoom{}).
		Where("uuid = ? AND member_cnt > 0", uuid).
		Update("member_cnt", gorm.Expr("member_cnt - 1")).Error
	if err != nil {
		return wrapDBErrorf(err, "递减聊天室成员数 uuid=%s", uuid)
	}
	return nil
}
