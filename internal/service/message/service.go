// Package message 实现消息历史与未读统计业务逻辑
// 历史列表走 Cache-Aside：先查缓存，未命中回源数据库并异步回填
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fitmall_chat_server/internal/dao/mysql/repository"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/dto/respond"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/errorx"
	"fitmall_chat_server/pkg/pagination"
)

const timeLayout = "2006-01-02 15:04:05"

// messageService 消息历史业务逻辑实现
type messageService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewMessageService 构造函数，注入所有依赖
func NewMessageService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *messageService {
	return &messageService{
		repos: repos,
		cache: cacheService,
	}
}

// GetSupportMessageList 分页获取客服房间消息历史
// 排除软删，按 (send_at, uuid) 升序
func (m *messageService) GetSupportMessageList(req request.MessageListRequest) (*respond.SupportMessageListWrapper, error) {
	page, size := pagination.Normalize(req.Page, req.Size)
	key := "support_msg_list_" + req.RoomId + "_" + strconv.Itoa(page) + "_" + strconv.Itoa(size)

	if cached, err := m.cache.Get(context.Background(), key); err == nil && cached != "" {
		var wrapper respond.SupportMessageListWrapper
		if err := json.Unmarshal([]byte(cached), &wrapper); err == nil {
			return &wrapper, nil
		}
		zap.L().Warn("客服消息缓存损坏，回源数据库", zap.String("key", key))
	}

	messageList, total, err := m.repos.SupportMessage.FindByRoomUuid(req.RoomId, page, size)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.SupportMessageRespond, 0, len(messageList))
	for i := range messageList {
		msg := &messageList[i]
		list = append(list, respond.SupportMessageRespond{
			Uuid:     strconv.FormatInt(msg.Uuid, 10),
			RoomId:   msg.RoomUuid,
			SendId:   msg.SendId,
			Content:  msg.Content,
			Kind:     msg.Kind,
			SendAt:   msg.SendAt.Format(timeLayout),
			ReadFlag: msg.ReadFlag,
		})
	}
	wrapper := &respond.SupportMessageListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}

	m.backfill(key, wrapper)
	return wrapper, nil
}

// GetMultiMessageList 分页获取聊天室消息历史
func (m *messageService) GetMultiMessageList(req request.MessageListRequest) (*respond.MultiMessageListWrapper, error) {
	page, size := pagination.Normalize(req.Page, req.Size)
	key := "multi_msg_list_" + req.RoomId + "_" + strconv.Itoa(page) + "_" + strconv.Itoa(size)

	if cached, err := m.cache.Get(context.Background(), key); err == nil && cached != "" {
		var wrapper respond.MultiMessageListWrapper
		if err := json.Unmarshal([]byte(cached), &wrapper); err == nil {
			return &wrapper, nil
		}
		zap.L().Warn("聊天室消息缓存损坏，回源数据库", zap.String("key", key))
	}

	messageList, total, err := m.repos.MultiMessage.FindByRoomUuid(req.RoomId, page, size)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.MultiMessageRespond, 0, len(messageList))
	for i := range messageList {
		list = append(list, toMultiMessageRespond(&messageList[i]))
	}
	wrapper := &respond.MultiMessageListWrapper{
		List:     list,
		PageInfo: pagination.New(page, size, total),
	}

	m.backfill(key, wrapper)
	return wrapper, nil
}

// GetSupportUnread 统计读者在客服房间中的未读数
func (m *messageService) GetSupportUnread(roomId, readerId string) (*respond.UnreadCountRespond, error) {
	unread, err := m.repos.SupportMessage.CountUnread(roomId, readerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.UnreadCountRespond{RoomId: roomId, Unread: unread}, nil
}

// GetMultiUnread 统计成员在聊天室中的未读数
// 以成员的已读游标为界，排除本人发送与软删消息
func (m *messageService) GetMultiUnread(roomId, memberId string) (*respond.UnreadCountRespond, error) {
	participant, err := m.repos.Participant.FindActive(roomId, memberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrForbidden
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	var lastReadAt time.Time
	if participant.LastReadAt.Valid {
		lastReadAt = participant.LastReadAt.Time
	}
	unread, err := m.repos.MultiMessage.CountUnread(roomId, memberId, lastReadAt)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.UnreadCountRespond{RoomId: roomId, Unread: unread}, nil
}

// backfill 异步回填列表缓存，失败只记日志
func (m *messageService) backfill(key string, wrapper interface{}) {
	data, err := json.Marshal(wrapper)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	m.cache.SubmitTask(func() {
		if err := m.cache.Set(context.Background(), key, string(data), time.Minute*constants.REDIS_TIMEOUT); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

func toMultiMessageRespond(message *model.MultiMessage) respond.MultiMessageRespond {
	return respond.MultiMessageRespond{
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
