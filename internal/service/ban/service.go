// Package ban 实现封禁门禁与封禁记录管理
package ban

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"fitmall_chat_server/internal/dao/mysql/repository"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/internal/infrastructure/sms"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/errorx"
	"fitmall_chat_server/pkg/pagination"
)

const timeLayout = "2006-01-02 15:04:05"

// banService 封禁业务逻辑实现
// 通过构造函数注入 Repository、Cache、Broker 和短信服务
type banService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	broker chat.MessageBroker
	sms    sms.SmsService
}

// NewBanService 构造函数，注入所有依赖
func NewBanService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker chat.MessageBroker, smsService sms.SmsService) *banService {
	return &banService{
		repos:  repos,
		cache:  cacheService,
		broker: broker,
		sms:    smsService,
	}
}

// IsBanned 封禁判定谓词
// 成员被封禁当且仅当其最近一条未解封记录当前仍生效；
// 定时封禁到期后谓词自动翻转，无需回填记录
func (b *banService) IsBanned(memberId string) (bool, error) {
	record, err := b.repos.BanRecord.FindLatestActiveByMemberId(memberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		zap.L().Error(err.Error())
		return false, errorx.ErrServerBusy
	}
	return record.IsCurrentlyBanned(time.Now()), nil
}

// RecordBan 封禁成员
// 写入封禁记录后强制该成员下线，并尽力而为地发送短信通知；
// 记录携带操作管理员的角色码快照，留痕不受后续角色变更影响
func (b *banService) RecordBan(req request.RecordBanRequest) error {
	operator, err := b.repos.Member.FindByUuid(req.OperatorId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "管理员不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if operator.IsAdmin == 0 {
		return errorx.ErrForbidden
	}

	member, err := b.repos.Member.FindByUuid(req.MemberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "成员不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	now := time.Now()
	record := model.BanRecord{
		MemberId:  req.MemberId,
		BannedAt:  now,
		Reason:    req.Reason,
		AdminId:   req.OperatorId,
		AdminRole: operator.IsAdmin,
	}
	if req.DurationDays > 0 {
		record.BannedUntil.Time = now.AddDate(0, 0, req.DurationDays)
		record.BannedUntil.Valid = true
	}
	if err := b.repos.BanRecord.Create(&record); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	// 强制下线推送，失败只记日志，封禁本身已生效
	logout := respond.ForcedLogoutRespond{MemberId: req.MemberId, Reason: req.Reason}
	if data, err := json.Marshal(logout); err == nil {
		if err := b.broker.Publish(context.Background(), constants.MemberLogoutChannel(req.MemberId), data); err != nil {
			zap.L().Error("封禁下线推送失败", zap.Error(err))
		}
	}

	// 短信通知尽力而为
	if member.Telephone != "" {
		telephone := member.Telephone
		var until time.Time
		if record.BannedUntil.Valid {
			until = record.BannedUntil.Time
		}
		go func() {
			if err := b.sms.SendBanNotice(telephone, req.Reason, until); err != nil {
				zap.L().Warn("封禁短信通知失败", zap.Error(err), zap.String("member", req.MemberId))
			}
		}()
	}

	zap.L().Info("成员已封禁", zap.String("member", req.MemberId), zap.String("operator", req.OperatorId))
	return nil
}

// RecordUnban 解封成员
// 已解封或从未封禁时幂等返回成功
func (b *banService) RecordUnban(req request.UnbanRequest) error {
	record, err := b.repos.BanRecord.FindLatestActiveByMemberId(req.MemberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	rows, err := b.repos.BanRecord.Unban(record.ID, req.OperatorId, time.Now())
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if rows == 0 {
		// 并发解封，另一管理员先到，结果一致
		return nil
	}

	member, err := b.repos.Member.FindByUuid(req.MemberId)
	if err == nil && member.Telephone != "" {
		telephone := member.Telephone
		go func() {
			if err := b.sms.SendUnbanNotice(telephone); err != nil {
				zap.L().Warn("解封短信通知失败", zap.Error(err), zap.String("member", req.MemberId))
			}
		}()
	}

	zap.L().Info("成员已解封", zap.String("member", req.MemberId), zap.String("operator", req.OperatorId))
	return nil
}

// GetBanList 分页获取封禁记录
func (b *banService) GetBanList(req request.PageRequest) (*respond.BanListWrapper, error) {
	page, size := pagination.Normalize(req.Page, req.Size)
	records, total, err := b.repos.BanRecord.GetBanList(page, size)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	now := time.Now()
	list := make([]respond.BanRecordRespond, 0, len(records))
	for i := range records {
		rec := &records[i]
		rsp := respond.BanRecordRespond{
			MemberId:     rec.MemberId,
			OperatorId:   rec.AdminId,
			OperatorRole: rec.AdminRole,
			Reason:       rec.Reason,
			BannedAt:     rec.BannedAt.Format(timeLayout),
			Active:       rec.IsCurrentlyBanned(now),
		}
		if rec.BannedUntil.Valid {
			rsp.BannedUntil = rec.BannedUntil.Time.Format(timeLayout)
		}
		if rec.UnbannedAt.Valid {
			rsp.UnbannedAt = rec.UnbannedAt.Time.Format(timeLayout)
		}
		list = append(list, rsp)
	}

	return &respond.BanListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}, nil
}
