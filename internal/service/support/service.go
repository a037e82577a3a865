// Package support 实现客服房间业务逻辑
// 房间状态机：WAITING -> ACTIVE -> ENDED；WAITING -> REJECTED
// 所有状态迁移通过条件 UPDATE 落库，先写者胜，无应用层锁
package support

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fitmall_chat_server/internal/dao/mysql/repository"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/enum/message/message_kind_enum"
	"fitmall_chat_server/pkg/enum/support/room_status_enum"
	"fitmall_chat_server/pkg/errorx"
	"fitmall_chat_server/pkg/pagination"
	"fitmall_chat_server/pkg/util/random"
	"fitmall_chat_server/pkg/util/snowflake"
)

const timeLayout = "2006-01-02 15:04:05"

// BanGate 封禁门禁谓词
// 由 ban 包实现，发消息与发起会话前检查
type BanGate interface {
	IsBanned(memberId string) (bool, error)
}

// supportService 客服房间业务逻辑实现
type supportService struct {
	repos   *repository.Repositories
	cache   myredis.AsyncCacheService
	broker  chat.MessageBroker
	rooms   chat.RoomCloser
	banGate BanGate
}

// NewSupportService 构造函数，注入所有依赖
func NewSupportService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker chat.MessageBroker, rooms chat.RoomCloser, banGate BanGate) *supportService {
	return &supportService{
		repos:   repos,
		cache:   cacheService,
		broker:  broker,
		rooms:   rooms,
		banGate: banGate,
	}
}

// CreateFromQuestion 成员提交前置问卷并派生等待中的客服房间
// 同一成员同一时刻至多一个非终态房间
func (s *supportService) CreateFromQuestion(req request.CreateQuestionRequest) (*respond.SupportRoomRespond, error) {
	banned, err := s.banGate.IsBanned(req.MemberId)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, errorx.ErrForbidden
	}

	if _, err := s.repos.SupportRoom.FindOpenByMemberId(req.MemberId); err == nil {
		return nil, errorx.ErrAlreadyInSession
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	question := model.PreChatQuestion{
		Uuid:           fmt.Sprintf("Q%s", random.GetNowAndLenRandomString(11)),
		MemberId:       req.MemberId,
		QuestionType:   req.QuestionType,
		QuestionDetail: req.QuestionDetail,
	}
	openFlag := req.MemberId
	room := model.SupportRoom{
		Uuid:           fmt.Sprintf("S%s", random.GetNowAndLenRandomString(11)),
		MemberId:       req.MemberId,
		OpenFlag:       &openFlag,
		QuestionType:   req.QuestionType,
		QuestionDetail: req.QuestionDetail,
		Status:         room_status_enum.Waiting,
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.PreChatQuestion.Create(&question); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.SupportRoom.Create(&room); err != nil {
			// open_flag 唯一索引兜底：并发双写同时越过前置检查时后写者在此失败
			if errorx.IsDuplicateKey(err) {
				return errorx.ErrAlreadyInSession
			}
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.PreChatQuestion.UpdateRoomUuid(question.Uuid, room.Uuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 通知管理员工作台有新工单等待接入
	rsp := s.toRoomRespond(&room, 0)
	if data, err := json.Marshal(rsp); err == nil {
		if err := s.broker.Publish(context.Background(), constants.ChannelAdminStatus, data); err != nil {
			zap.L().Error("新工单通知推送失败", zap.Error(err))
		}
	}

	zap.L().Info("客服房间已创建", zap.String("room", room.Uuid), zap.String("member", req.MemberId))
	return rsp, nil
}

// Claim 管理员认领等待中的房间
// 单语句条件更新保证多名管理员并发认领时恰好一人成功
func (s *supportService) Claim(req request.ClaimRoomRequest) (*respond.SupportRoomRespond, error) {
	admin, err := s.repos.Member.FindByUuid(req.AdminId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "管理员不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if admin.IsAdmin == 0 {
		return nil, errorx.ErrForbidden
	}

	startedAt := time.Now()
	rows, err := s.repos.SupportRoom.ClaimWaiting(req.RoomId, req.AdminId, startedAt)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if rows == 0 {
		return nil, s.explainClaimFailure(req.RoomId)
	}

	room, err := s.repos.SupportRoom.FindByUuid(req.RoomId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	s.publishRoomStatus(room.Uuid, room_status_enum.Active, "")
	zap.L().Info("客服房间已接入", zap.String("room", room.Uuid), zap.String("admin", req.AdminId))
	return s.toRoomRespond(room, 0), nil
}

// explainClaimFailure 条件更新未命中时区分具体失败原因
func (s *supportService) explainClaimFailure(roomId string) error {
	room, err := s.repos.SupportRoom.FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "客服房间不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if room.Status == room_status_enum.Active {
		return errorx.ErrAlreadyClaimed
	}
	return errorx.ErrInvalidTransition
}

// Reject 管理员拒绝等待中的房间，房间进入终态 REJECTED
func (s *supportService) Reject(req request.RejectRoomRequest) error {
	admin, err := s.repos.Member.FindByUuid(req.AdminId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "管理员不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if admin.IsAdmin == 0 {
		return errorx.ErrForbidden
	}

	rows, err := s.repos.SupportRoom.RejectWaiting(req.RoomId, req.AdminId, req.Reason, time.Now())
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if rows == 0 {
		return s.explainClaimFailure(req.RoomId)
	}

	s.publishRoomStatus(req.RoomId, room_status_enum.Rejected, req.Reason)
	s.rooms.TearDownRoom(req.RoomId)
	zap.L().Info("客服房间已拒绝", zap.String("room", req.RoomId), zap.String("admin", req.AdminId))
	return nil
}

// SendMessage 在进行中的房间里发送消息
// 仅房间双方可发言，发送方被封禁时拒绝且不落库
func (s *supportService) SendMessage(req request.SendSupportMessageRequest) (*respond.SupportMessageRespond, error) {
	room, err := s.repos.SupportRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "客服房间不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if room.Status != room_status_enum.Active {
		return nil, errorx.ErrInvalidTransition
	}
	if req.SendId != room.MemberId && req.SendId != room.AdminId {
		return nil, errorx.ErrForbidden
	}

	banned, err := s.banGate.IsBanned(req.SendId)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, errorx.ErrForbidden
	}

	message := model.SupportMessage{
		Uuid:     snowflake.GenerateID(),
		RoomUuid: room.Uuid,
		SendId:   req.SendId,
		Content:  req.Content,
		Kind:     req.Kind,
		SendAt:   time.Now(),
	}
	// 客服房间的种类集合只有聊天与服务端生成的系统/入室/离室，
	// 客户端填写任何其他种类一律回落为普通聊天
	if message.Kind != message_kind_enum.Chat {
		message.Kind = message_kind_enum.Chat
	}
	if err := s.repos.SupportMessage.Create(&message); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := toMessageRespond(&message)
	if data, err := json.Marshal(rsp); err == nil {
		if err := s.broker.Publish(context.Background(), constants.RoomChannel(room.Uuid), data); err != nil {
			zap.L().Error("客服消息推送失败", zap.Error(err))
		}
	}

	// 历史缓存失效异步执行
	roomUuid := room.Uuid
	s.cache.SubmitTask(func() {
		if err := s.cache.DeleteByPattern(context.Background(), "support_msg_list_"+roomUuid+"_*"); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return rsp, nil
}

// MarkRead 读者将房间内对方发送的全部未读消息翻转为已读
func (s *supportService) MarkRead(req request.MarkReadRequest) error {
	room, err := s.repos.SupportRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "客服房间不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if req.ReaderId != room.MemberId && req.ReaderId != room.AdminId {
		return errorx.ErrForbidden
	}
	if err := s.repos.SupportMessage.MarkRead(room.Uuid, req.ReaderId); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// End 结束房间，双方任意一方可操作
// 对已结束房间重复调用幂等返回成功；已拒绝房间不可结束
func (s *supportService) End(req request.EndRoomRequest) error {
	room, err := s.repos.SupportRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "客服房间不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if req.OperatorId != room.MemberId && req.OperatorId != room.AdminId {
		return errorx.ErrForbidden
	}

	rows, err := s.repos.SupportRoom.EndOpen(req.RoomId, time.Now())
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if rows == 0 {
		latest, err := s.repos.SupportRoom.FindByUuid(req.RoomId)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if latest.Status == room_status_enum.Ended {
			return nil
		}
		return errorx.ErrInvalidTransition
	}

	s.publishRoomStatus(req.RoomId, room_status_enum.Ended, "")
	s.rooms.TearDownRoom(req.RoomId)
	zap.L().Info("客服房间已结束", zap.String("room", req.RoomId), zap.String("operator", req.OperatorId))
	return nil
}

// GetWaitingList 分页获取等待接入的房间，先到先服务排序
func (s *supportService) GetWaitingList(req request.PageRequest) (*respond.SupportRoomListWrapper, error) {
	page, size := pagination.Normalize(req.Page, req.Size)
	roomList, total, err := s.repos.SupportRoom.GetWaitingList(page, size)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.SupportRoomRespond, 0, len(roomList))
	for i := range roomList {
		list = append(list, *s.toRoomRespond(&roomList[i], 0))
	}
	return &respond.SupportRoomListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}, nil
}

// GetRoom 获取单个客服房间信息
func (s *supportService) GetRoom(roomId string) (*respond.SupportRoomRespond, error) {
	room, err := s.repos.SupportRoom.FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "客服房间不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return s.toRoomRespond(room, 0), nil
}

// GetMemberRoom 获取成员当前非终态房间及其未读数
func (s *supportService) GetMemberRoom(memberId string) (*respond.SupportRoomRespond, error) {
	room, err := s.repos.SupportRoom.FindOpenByMemberId(memberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "没有进行中的客服会话")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	unread, err := s.repos.SupportMessage.CountUnread(room.Uuid, memberId)
	if err != nil {
		zap.L().Error(err.Error())
		unread = 0
	}
	return s.toRoomRespond(room, unread), nil
}

// publishRoomStatus 把状态变更推送到房间状态通道
func (s *supportService) publishRoomStatus(roomId string, status int8, reason string) {
	rsp := respond.RoomStatusRespond{RoomId: roomId, Status: status, Reason: reason}
	data, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	if err := s.broker.Publish(context.Background(), constants.RoomStatusChannel(roomId), data); err != nil {
		zap.L().Error("房间状态推送失败", zap.Error(err))
	}
}

func (s *supportService) toRoomRespond(room *model.SupportRoom, unread int64) *respond.SupportRoomRespond {
	rsp := &respond.SupportRoomRespond{
		RoomId:         room.Uuid,
		MemberId:       room.MemberId,
		AdminId:        room.AdminId,
		QuestionType:   room.QuestionType,
		QuestionDetail: room.QuestionDetail,
		Status:         room.Status,
		CreatedAt:      room.CreatedAt.Format(timeLayout),
		RejectReason:   room.RejectReason,
		Unread:         unread,
	}
	if room.StartedAt.Valid {
		rsp.StartedAt = room.StartedAt.Time.Format(timeLayout)
	}
	if room.EndedAt.Valid {
		rsp.EndedAt = room.EndedAt.Time.Format(timeLayout)
	}
	if room.RejectedAt.Valid {
		rsp.RejectedAt = room.RejectedAt.Time.Format(timeLayout)
	}
	return rsp
}

func toMessageRespond(message *model.SupportMessage) *respond.SupportMessageRespond {
	return &respond.SupportMessageRespond{
		Uuid:     strconv.FormatInt(message.Uuid, 10),
		RoomId:   message.RoomUuid,
		SendId:   message.SendId,
		Content:  message.Content,
		Kind:     message.Kind,
		SendAt:   message.SendAt.Format(timeLayout),
		ReadFlag: message.ReadFlag,
	}
}
