package repository

import (
	"time"

	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/enum/support/room_status_enum"
	"fitmall_chat_server/pkg/pagination"

	"gorm.io/gorm"
)

type supportRoomRepository struct {
	db *gorm.DB
}

// NewSupportRoomRepository 创建客服房间 Repository
func NewSupportRoomRepository(db *gorm.DB) SupportRoomRepository {
	return &supportRoomRepository{db: db}
}

// FindByUuid 根据 UUID 查找房间
func (r *supportRoomRepository) FindByUuid(uuid string) (*model.SupportRoom, error) {
	var room model.SupportRoom
	if err := r.db.Where("uuid = ?", uuid).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询客服房间 uuid=%s", uuid)
	}
	return &room, nil
}

// FindOpenByMemberId 查找成员当前非终态房间
func (r *supportRoomRepository) FindOpenByMemberId(memberId string) (*model.SupportRoom, error) {
	var room model.SupportRoom
	err := r.db.Where("member_id = ? AND status IN ?", memberId,
		[]int8{room_status_enum.Waiting, room_status_enum.Active}).First(&room).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询成员进行中客服房间 member_id=%s", memberId)
	}
	return &room, nil
}

// GetWaitingList 分页获取等待接入的房间，按创建时间升序（先到先服务）
func (r *supportRoomRepository) GetWaitingList(page, pageSize int) ([]model.SupportRoom, int64, error) {
	var rooms []model.SupportRoom
	var total int64

	query := r.db.Model(&model.SupportRoom{}).Where("status = ?", room_status_enum.Waiting)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计等待工单")
	}
	if err := query.Order("created_at ASC").
		Offset(pagination.Offset(page, pageSize)).Limit(pageSize).
		Find(&rooms).Error; err != nil {
		return nil, 0, wrapDBError(err, "查询等待工单列表")
	}
	return rooms, total, nil
}

// Create 创建房间
func (r *supportRoomRepository) Create(room *model.SupportRoom) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "创建客服房间")
	}
	return nil
}

// ClaimWaiting 接入等待中的房间
// 单语句条件更新实现 check-and-set：两名管理员并发接入时先写者胜，
// 后写者 RowsAffected 为 0
func (r *supportRoomRepository) ClaimWaiting(uuid, adminId string, startedAt time.Time) (int64, error) {
	res := r.db.Model(&model.SupportRoom{}).
		Where("uuid = ? AND status = ?", uuid, room_status_enum.Waiting).
		Updates(map[string]interface{}{
			"status":     room_status_enum.Active,
			"admin_id":   adminId,
			"started_at": startedAt,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "接入客服房间 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}

// RejectWaiting 拒绝等待中的房间，终态同时释放 open_flag
func (r *supportRoomRepository) RejectWaiting(uuid, adminId, reason string, rejectedAt time.Time) (int64, error) {
	res := r.db.Model(&model.SupportRoom{}).
		Where("uuid = ? AND status = ?", uuid, room_status_enum.Waiting).
		Updates(map[string]interface{}{
			"status":        room_status_enum.Rejected,
			"admin_id":      adminId,
			"reject_reason": reason,
			"rejected_at":   rejectedAt,
			"open_flag":     nil,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "拒绝客服房间 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}

// EndOpen 结束房间，终态同时释放 open_flag
// WAITING/ACTIVE 均可结束；双方同时结束时先写者胜，后写者 RowsAffected 为 0
func (r *supportRoomRepository) EndOpen(uuid string, endedAt time.Time) (int64, error) {
	res := r.db.Model(&model.SupportRoom{}).
		Where("uuid = ? AND status IN ?", uuid,
			[]int8{room_status_enum.Waiting, room_status_enum.Active}).
		Updates(map[string]interface{}{
			"status":    room_status_enum.Ended,
			"ended_at":  endedAt,
			"open_flag": nil,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "结束客服房间 uuid=%s", uuid)
	}
	return res.RowsAffected, nil
}
