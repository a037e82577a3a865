package repository

import (
	"time"

	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/pagination"

	"gorm.io/gorm"
)

type banRecordRepository struct {
	db *gorm.DB
}

// NewBanRecordRepository 创建封禁记录 Repository
func NewBanRecordRepository(db *gorm.DB) BanRecordRepository {
	return &banRecordRepository{db: db}
}

// FindLatestActiveByMemberId 查找成员最近一条未解封记录
func (r *banRecordRepository) FindLatestActiveByMemberId(memberId string) (*model.BanRecord, error) {
	var record model.BanRecord
	err := r.db.Where("member_id = ? AND unbanned_at IS NULL", memberId).
		Order("banned_at DESC").First(&record).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询封禁记录 member_id=%s", memberId)
	}
	return &record, nil
}

// Create 写入封禁记录
func (r *banRecordRepository) Create(record *model.BanRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return wrapDBError(err, "创建封禁记录")
	}
	return nil
}

// Unban 回填解封信息
// 条件更新保证重复解封只生效一次
func (r *banRecordRepository) Unban(recordId uint, adminId string, unbannedAt time.Time) (int64, error) {
	res := r.db.Model(&model.BanRecord{}).
		Where("id = ? AND unbanned_at IS NULL", recordId).
		Updates(map[string]interface{}{
			"unbanned_at": unbannedAt,
			"unbanned_by": adminId,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "解封记录 id=%d", recordId)
	}
	return res.RowsAffected, nil
}

// GetBanList 分页获取封禁记录，按封禁时间倒序
func (r *banRecordRepository) GetBanList(page, pageSize int) ([]model.BanRecord, int64, error) {
	var records []model.BanRecord
	var total int64

	query := r.db.Model(&model.BanRecord{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计封禁记录")
	}
	if err := query.Order("banned_at DESC").
		Offset(pagination.Offset(page, pageSize)).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, wrapDBError(err, "查询封禁记录列表")
	}
	return records, total, nil
}
