// Package multiroom 实现多人聊天室业务逻辑
// 入室容量判定在行锁事务内完成，保证满员边界不超卖
package multiroom

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fitmall_chat_server/internal/dao/mysql/repository"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/internal/service/chat"
	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/enum/message/message_kind_enum"
	"fitmall_chat_server/pkg/enum/multiroom/role_enum"
	"fitmall_chat_server/pkg/enum/multiroom/room_status_enum"
	"fitmall_chat_server/pkg/enum/multiroom/room_type_enum"
	"fitmall_chat_server/pkg/errorx"
	"fitmall_chat_server/pkg/pagination"
	"fitmall_chat_server/pkg/util/random"
	"fitmall_chat_server/pkg/util/snowflake"
)

const timeLayout = "2006-01-02 15:04:05"

// 容量上下限
// 下限 1 即只容纳创建者本人的单人聊天室；上限是平台运营约束
const (
	minCapacity = 1
	maxCapacity = 500
)

// BanGate 封禁门禁谓词
type BanGate interface {
	IsBanned(memberId string) (bool, error)
}

// multiRoomService 多人聊天室业务逻辑实现
type multiRoomService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	broker   chat.MessageBroker
	rooms    chat.RoomCloser
	presence chat.PresenceChecker
	banGate  BanGate
}

// NewMultiRoomService 构造函数，注入所有依赖
func NewMultiRoomService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker chat.MessageBroker, rooms chat.RoomCloser, presence chat.PresenceChecker, banGate BanGate) *multiRoomService {
	return &multiRoomService{
		repos:    repos,
		cache:    cacheService,
		broker:   broker,
		rooms:    rooms,
		presence: presence,
		banGate:  banGate,
	}
}

// CreateRoom 创建聊天室，创建者自动以 CREATOR 角色入室
// 私密聊天室必须设置入室密码，密码只存 bcrypt 散列
func (m *multiRoomService) CreateRoom(req request.CreateMultiRoomRequest) (*respond.MultiRoomRespond, error) {
	banned, err := m.banGate.IsBanned(req.CreatorId)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, errorx.ErrForbidden
	}
	if req.MaxParticipants < minCapacity || req.MaxParticipants > maxCapacity {
		return nil, errorx.ErrInvalidCapacity
	}
	if req.RoomType == room_type_enum.Private && req.Password == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "私密聊天室必须设置密码")
	}

	room := model.MultiRoom{
		Uuid:            fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:            req.Name,
		Description:     req.Description,
		CreatorId:       req.CreatorId,
		MaxParticipants: req.MaxParticipants,
		MemberCnt:       1,
		Status:          room_status_enum.Active,
		RoomType:        req.RoomType,
	}
	if req.RoomType == room_type_enum.Private {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		room.PasswordHash = string(hash)
	}

	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.MultiRoom.Create(&room); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		participant := model.Participant{
			RoomUuid: room.Uuid,
			MemberId: req.CreatorId,
			Role:     role_enum.Creator,
			JoinedAt: time.Now(),
		}
		if err := txRepos.Participant.Create(&participant); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("聊天室已创建", zap.String("room", room.Uuid), zap.String("creator", req.CreatorId))
	return m.toRoomRespond(&room), nil
}

// Join 加入聊天室
// 行锁事务内校验状态、密码、重复加入与容量，通过后插入成员行
func (m *multiRoomService) Join(req request.JoinMultiRoomRequest) (*respond.MultiRoomRespond, error) {
	banned, err := m.banGate.IsBanned(req.MemberId)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, errorx.ErrForbidden
	}

	var room *model.MultiRoom
	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		locked, err := txRepos.MultiRoom.FindByUuidForUpdate(req.RoomId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeNotFound, "聊天室不存在")
			}
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if locked.Status != room_status_enum.Active {
			return errorx.ErrInvalidTransition
		}
		if locked.RoomType == room_type_enum.Private {
			if err := bcrypt.CompareHashAndPassword([]byte(locked.PasswordHash), []byte(req.Password)); err != nil {
				return errorx.ErrBadPassword
			}
		}
		if _, err := txRepos.Participant.FindActive(req.RoomId, req.MemberId); err == nil {
			return errorx.ErrAlreadyJoined
		} else if !errorx.IsNotFound(err) {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		active, err := txRepos.Participant.CountActive(req.RoomId)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if active >= int64(locked.MaxParticipants) {
			return errorx.ErrRoomFull
		}

		participant := model.Participant{
			RoomUuid: req.RoomId,
			MemberId: req.MemberId,
			Role:     role_enum.Member,
			JoinedAt: time.Now(),
		}
		if err := txRepos.Participant.Create(&participant); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.MultiRoom.IncrementMemberCnt(req.RoomId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		locked.MemberCnt++
		room = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publishSystemMessage(req.RoomId, req.MemberId, message_kind_enum.Join)
	zap.L().Info("成员已入室", zap.String("room", req.RoomId), zap.String("member", req.MemberId))
	return m.toRoomRespond(room), nil
}

// Leave 退出聊天室
// 给活跃行盖离开时间戳，历史行保留；创建者退出不做移交
func (m *multiRoomService) Leave(req request.LeaveMultiRoomRequest) error {
	room, err := m.repos.MultiRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "聊天室不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		rows, err := txRepos.Participant.MarkLeft(req.RoomId, req.MemberId, time.Now())
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if rows == 0 {
			return errorx.New(errorx.CodeNotFound, "成员不在聊天室内")
		}
		if err := txRepos.MultiRoom.DecrementMemberCnt(req.RoomId); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	if room.CreatorId == req.MemberId {
		// 创建者退出后聊天室保持无主状态，管理操作只剩平台管理员
		zap.L().Warn("创建者已退出聊天室，房主权限悬空",
			zap.String("room", req.RoomId), zap.String("creator", req.MemberId))
	}

	m.publishSystemMessage(req.RoomId, req.MemberId, message_kind_enum.Leave)
	zap.L().Info("成员已离室", zap.String("room", req.RoomId), zap.String("member", req.MemberId))
	return nil
}

// SendMessage 在聊天室内发送消息
// 仅活跃成员可发言，发送方被封禁时拒绝且不落库
func (m *multiRoomService) SendMessage(req request.SendMultiMessageRequest) (*respond.MultiMessageRespond, error) {
	room, err := m.repos.MultiRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "聊天室不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if room.Status != room_status_enum.Active {
		return nil, errorx.ErrInvalidTransition
	}
	if _, err := m.repos.Participant.FindActive(req.RoomId, req.SendId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrForbidden
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	banned, err := m.banGate.IsBanned(req.SendId)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, errorx.ErrForbidden
	}

	message := model.MultiMessage{
		Uuid:     snowflake.GenerateID(),
		RoomUuid: req.RoomId,
		SendId:   req.SendId,
		Content:  req.Content,
		Kind:     req.Kind,
		Url:      req.Url,
		FileType: req.FileType,
		FileName: req.FileName,
		FileSize: req.FileSize,
		SendAt:   time.Now(),
	}
	// 系统/入室/离室种类由服务端生成，客户端填写时回落为普通聊天
	if message.Kind != message_kind_enum.Chat && message.Kind != message_kind_enum.File &&
		message.Kind != message_kind_enum.Image {
		message.Kind = message_kind_enum.Chat
	}
	if err := m.repos.MultiMessage.Create(&message); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := toMessageRespond(&message)
	if data, err := json.Marshal(rsp); err == nil {
		if err := m.broker.Publish(context.Background(), constants.RoomChannel(req.RoomId), data); err != nil {
			zap.L().Error("聊天室消息推送失败", zap.Error(err))
		}
	}

	roomUuid := req.RoomId
	m.cache.SubmitTask(func() {
		if err := m.cache.DeleteByPattern(context.Background(), "multi_msg_list_"+roomUuid+"_*"); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return rsp, nil
}

// MarkRead 推进读者的已读游标到当前时刻
func (m *multiRoomService) MarkRead(req request.MarkReadRequest) error {
	if _, err := m.repos.Participant.FindActive(req.RoomId, req.ReaderId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.ErrForbidden
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if err := m.repos.Participant.UpdateLastReadAt(req.RoomId, req.ReaderId, time.Now()); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// GetRoomList 分页获取正常状态的聊天室
func (m *multiRoomService) GetRoomList(req request.PageRequest) (*respond.MultiRoomListWrapper, error) {
	page, size := pagination.Normalize(req.Page, req.Size)
	roomList, total, err := m.repos.MultiRoom.GetRoomList(page, size)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.MultiRoomRespond, 0, len(roomList))
	for i := range roomList {
		list = append(list, *m.toRoomRespond(&roomList[i]))
	}
	return &respond.MultiRoomListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}, nil
}

// GetRoomInfo 获取单个聊天室信息
func (m *multiRoomService) GetRoomInfo(roomId string) (*respond.MultiRoomRespond, error) {
	room, err := m.repos.MultiRoom.FindByUuid(roomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "聊天室不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return m.toRoomRespond(room), nil
}

// GetParticipantList 分页获取聊天室活跃成员，附带展示信息与在线徽标
func (m *multiRoomService) GetParticipantList(roomId string, req request.PageRequest) (*respond.ParticipantListWrapper, error) {
	participants, err := m.repos.Participant.FindActiveByRoom(roomId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	uuids := make([]string, 0, len(participants))
	for i := range participants {
		uuids = append(uuids, participants[i].MemberId)
	}
	members, err := m.repos.Member.FindByUuids(uuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	memberIndex := make(map[string]*model.Member, len(members))
	for i := range members {
		memberIndex[members[i].Uuid] = &members[i]
	}

	page, size := pagination.Normalize(req.Page, req.Size)
	total := int64(len(participants))
	start := pagination.Offset(page, size)
	if start > len(participants) {
		start = len(participants)
	}
	end := start + size
	if end > len(participants) {
		end = len(participants)
	}

	list := make([]respond.ParticipantRespond, 0, end-start)
	for i := start; i < end; i++ {
		p := &participants[i]
		rsp := respond.ParticipantRespond{
			MemberId: p.MemberId,
			Role:     p.Role,
			JoinedAt: p.JoinedAt.Format(timeLayout),
			Online:   m.presence.IsOnline(p.MemberId),
		}
		if p.LastReadAt.Valid {
			rsp.LastReadAt = p.LastReadAt.Time.Format(timeLayout)
		}
		if member, ok := memberIndex[p.MemberId]; ok {
			rsp.Nickname = member.Nickname
			rsp.Avatar = member.Avatar
		}
		list = append(list, rsp)
	}

	return &respond.ParticipantListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}, nil
}

// CloseRoom 关闭聊天室
// 仅创建者或平台管理员可操作；关闭后推送状态并拆除订阅
func (m *multiRoomService) CloseRoom(req request.CloseMultiRoomRequest) error {
	room, err := m.repos.MultiRoom.FindByUuid(req.RoomId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "聊天室不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if room.Status == room_status_enum.Closed {
		return nil
	}

	if req.OperatorId != room.CreatorId {
		operator, err := m.repos.Member.FindByUuid(req.OperatorId)
		if err != nil || operator.IsAdmin == 0 {
			return errorx.ErrForbidden
		}
	}

	if err := m.repos.MultiRoom.UpdateStatus(req.RoomId, room_status_enum.Closed); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	rsp := respond.RoomStatusRespond{RoomId: req.RoomId, Status: room_status_enum.Closed}
	if data, err := json.Marshal(rsp); err == nil {
		if err := m.broker.Publish(context.Background(), constants.RoomStatusChannel(req.RoomId), data); err != nil {
			zap.L().Error("聊天室状态推送失败", zap.Error(err))
		}
	}
	m.rooms.TearDownRoom(req.RoomId)
	zap.L().Info("聊天室已关闭", zap.String("room", req.RoomId), zap.String("operator", req.OperatorId))
	return nil
}

// publishSystemMessage 落库并推送入室/离室系统消息
func (m *multiRoomService) publishSystemMessage(roomId, memberId string, kind int8) {
	payload, _ := json.Marshal(map[string]string{"member_id": memberId})
	message := model.MultiMessage{
		Uuid:          snowflake.GenerateID(),
		RoomUuid:      roomId,
		SendId:        memberId,
		Kind:          kind,
		SystemPayload: string(payload),
		SendAt:        time.Now(),
	}
	if err := m.repos.MultiMessage.Create(&message); err != nil {
		zap.L().Error(err.Error())
		return
	}
	if data, err := json.Marshal(toMessageRespond(&message)); err == nil {
		if err := m.broker.Publish(context.Background(), constants.RoomChannel(roomId), data); err != nil {
			zap.L().Error("系统消息推送失败", zap.Error(err))
		}
	}
}

func (m *multiRoomService) toRoomRespond(room *model.MultiRoom) *respond.MultiRoomRespond {
	return &respond.MultiRoomRespond{
		RoomId:          room.Uuid,
		Name:            room.Name,
		Description:     room.Description,
		CreatorId:       room.CreatorId,
		MaxParticipants: room.MaxParticipants,
		MemberCnt:       room.MemberCnt,
		Status:          room.Status,
		RoomType:        room.RoomType,
		HasPassword:     room.PasswordHash != "",
		CreatedAt:       room.CreatedAt.Format(timeLayout),
	}
}

func toMessageRespond(message *model.MultiMessage) *respond.MultiMessageRespond {
	return &respond.MultiMessageRespond{
		Uuid:          strconv.FormatInt(message.Uuid, 10),
		RoomId:        message.RoomUuid,
		SendId:        message.SendId,
		Content:       message.Content,
		Kind:          message.Kind,
		SystemPayload: message.SystemPayload,
		Url:           message.Url,
		FileType:      message.FileType,
		FileName:      message.FileName,
		FileSize:      message.FileSize,
		SendAt:        message.SendAt.Format(timeLayout),
	}
}
