package support

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitmall_chat_server/internal/dao/mysql/repository"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/constants"
	"fitmall_chat_server/pkg/enum/message/message_kind_enum"
	"fitmall_chat_server/pkg/enum/support/room_status_enum"
	"fitmall_chat_server/pkg/errorx"
)

// ==================== 测试替身 ====================

type fakeMemberRepo struct {
	members map[string]*model.Member
}

func (f *fakeMemberRepo) FindByUuid(uuid string) (*model.Member, error) {
	if m, ok := f.members[uuid]; ok {
		return m, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "成员不存在")
}

func (f *fakeMemberRepo) FindByUuids(uuids []string) ([]model.Member, error) {
	result := make([]model.Member, 0, len(uuids))
	for _, uuid := range uuids {
		if m, ok := f.members[uuid]; ok {
			result = append(result, *m)
		}
	}
	return result, nil
}

type fakeSupportRoomRepo struct {
	rooms map[string]*model.SupportRoom
}

func (f *fakeSupportRoomRepo) FindByUuid(uuid string) (*model.SupportRoom, error) {
	if r, ok := f.rooms[uuid]; ok {
		return r, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "客服房间不存在")
}

func (f *fakeSupportRoomRepo) FindOpenByMemberId(memberId string) (*model.SupportRoom, error) {
	for _, r := range f.rooms {
		if r.MemberId == memberId && !room_status_enum.IsTerminal(r.Status) {
			return r, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "没有进行中的客服会话")
}

func (f *fakeSupportRoomRepo) GetWaitingList(page, pageSize int) ([]model.SupportRoom, int64, error) {
	var list []model.SupportRoom
	for _, r := range f.rooms {
		if r.Status == room_status_enum.Waiting {
			list = append(list, *r)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeSupportRoomRepo) Create(room *model.SupportRoom) error {
	f.rooms[room.Uuid] = room
	return nil
}

func (f *fakeSupportRoomRepo) ClaimWaiting(uuid, adminId string, startedAt time.Time) (int64, error) {
	r, ok := f.rooms[uuid]
	if !ok || r.Status != room_status_enum.Waiting {
		return 0, nil
	}
	r.AdminId = adminId
	r.Status = room_status_enum.Active
	r.StartedAt.Time, r.StartedAt.Valid = startedAt, true
	return 1, nil
}

func (f *fakeSupportRoomRepo) RejectWaiting(uuid, adminId, reason string, rejectedAt time.Time) (int64, error) {
	r, ok := f.rooms[uuid]
	if !ok || r.Status != room_status_enum.Waiting {
		return 0, nil
	}
	r.AdminId = adminId
	r.Status = room_status_enum.Rejected
	r.RejectReason = reason
	r.RejectedAt.Time, r.RejectedAt.Valid = rejectedAt, true
	return 1, nil
}

func (f *fakeSupportRoomRepo) EndOpen(uuid string, endedAt time.Time) (int64, error) {
	r, ok := f.rooms[uuid]
	if !ok || room_status_enum.IsTerminal(r.Status) {
		return 0, nil
	}
	r.Status = room_status_enum.Ended
	r.EndedAt.Time, r.EndedAt.Valid = endedAt, true
	return 1, nil
}

type fakeSupportMessageRepo struct {
	messages  []model.SupportMessage
	markReads []string // 记录 roomUuid+readerId 调用
}

func (f *fakeSupportMessageRepo) Create(message *model.SupportMessage) error {
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeSupportMessageRepo) FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.SupportMessage, int64, error) {
	return f.messages, int64(len(f.messages)), nil
}

func (f *fakeSupportMessageRepo) CountUnread(roomUuid, readerId string) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.RoomUuid == roomUuid && m.SendId != readerId && m.ReadFlag == 0 {
			n++
		}
	}
	return n, nil
}

func (f *fakeSupportMessageRepo) MarkRead(roomUuid, readerId string) error {
	f.markReads = append(f.markReads, roomUuid+"/"+readerId)
	return nil
}

func (f *fakeSupportMessageRepo) SoftDelete(messageUuid int64) error { return nil }

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func (f *fakeBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.published == nil {
		f.published = make(map[string][][]byte)
	}
	f.published[channel] = append(f.published[channel], payload)
	return nil
}
func (f *fakeBroker) Start() {}
func (f *fakeBroker) Close() {}

type fakeRoomCloser struct {
	tornDown []string
}

func (f *fakeRoomCloser) TearDownRoom(roomId string) {
	f.tornDown = append(f.tornDown, roomId)
}

type fakeBanGate struct {
	banned map[string]bool
}

func (f *fakeBanGate) IsBanned(memberId string) (bool, error) {
	return f.banned[memberId], nil
}

type inlineCache struct{}

func (inlineCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (inlineCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (inlineCache) Delete(ctx context.Context, key string) error                        { return nil }
func (inlineCache) DeleteByPattern(ctx context.Context, pattern string) error           { return nil }
func (inlineCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (inlineCache) GetSetMembers(ctx context.Context, key string) ([]string, error) { return nil, nil }
func (inlineCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (inlineCache) SubmitTask(action func()) { action() }

// ==================== 测试装配 ====================

type testEnv struct {
	svc      *supportService
	rooms    *fakeSupportRoomRepo
	messages *fakeSupportMessageRepo
	broker   *fakeBroker
	closer   *fakeRoomCloser
	banGate  *fakeBanGate
}

func newTestEnv() *testEnv {
	memberRepo := &fakeMemberRepo{members: map[string]*model.Member{
		"U_member": {Uuid: "U_member", Nickname: "成员甲"},
		"U_admin":  {Uuid: "U_admin", Nickname: "客服乙", IsAdmin: 1},
		"U_other":  {Uuid: "U_other", Nickname: "路人丙"},
	}}
	roomRepo := &fakeSupportRoomRepo{rooms: make(map[string]*model.SupportRoom)}
	messageRepo := &fakeSupportMessageRepo{}
	repos := &repository.Repositories{
		Member:         memberRepo,
		SupportRoom:    roomRepo,
		SupportMessage: messageRepo,
	}
	broker := &fakeBroker{}
	closer := &fakeRoomCloser{}
	banGate := &fakeBanGate{banned: make(map[string]bool)}
	svc := NewSupportService(repos, inlineCache{}, broker, closer, banGate)
	return &testEnv{
		svc:      svc,
		rooms:    roomRepo,
		messages: messageRepo,
		broker:   broker,
		closer:   closer,
		banGate:  banGate,
	}
}

func (e *testEnv) seedRoom(uuid string, status int8) *model.SupportRoom {
	room := &model.SupportRoom{
		Uuid:         uuid,
		MemberId:     "U_member",
		QuestionType: "订单问题",
		Status:       status,
	}
	if status == room_status_enum.Active {
		room.AdminId = "U_admin"
	}
	e.rooms.rooms[uuid] = room
	return room
}

// ==================== 认领 ====================

func TestClaimWaitingRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Waiting)

	rsp, err := env.svc.Claim(request.ClaimRoomRequest{RoomId: "S1", AdminId: "U_admin"})
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if rsp.Status != room_status_enum.Active {
		t.Errorf("Status = %d, want Active", rsp.Status)
	}
	if rsp.AdminId != "U_admin" {
		t.Errorf("AdminId = %q, want U_admin", rsp.AdminId)
	}
	if len(env.broker.published[constants.RoomStatusChannel("S1")]) != 1 {
		t.Error("状态变更应推送到房间状态通道")
	}
}

func TestClaimByNonAdmin(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Waiting)

	_, err := env.svc.Claim(request.ClaimRoomRequest{RoomId: "S1", AdminId: "U_other"})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestClaimAlreadyClaimedRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	_, err := env.svc.Claim(request.ClaimRoomRequest{RoomId: "S1", AdminId: "U_admin"})
	if !errors.Is(err, errorx.ErrAlreadyClaimed) {
		t.Errorf("err = %v, want ErrAlreadyClaimed", err)
	}
}

func TestClaimEndedRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Ended)

	_, err := env.svc.Claim(request.ClaimRoomRequest{RoomId: "S1", AdminId: "U_admin"})
	if !errors.Is(err, errorx.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestClaimMissingRoom(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Claim(request.ClaimRoomRequest{RoomId: "S404", AdminId: "U_admin"})
	if !errorx.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

// ==================== 拒绝 ====================

func TestRejectWaitingRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Waiting)

	err := env.svc.Reject(request.RejectRoomRequest{RoomId: "S1", AdminId: "U_admin", Reason: "重复工单"})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if env.rooms.rooms["S1"].Status != room_status_enum.Rejected {
		t.Error("房间应进入已拒绝状态")
	}
	if len(env.closer.tornDown) != 1 || env.closer.tornDown[0] != "S1" {
		t.Errorf("拒绝后应拆除房间通道, tornDown = %v", env.closer.tornDown)
	}
}

// ==================== 发消息 ====================

func TestSendMessageInActiveRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	rsp, err := env.svc.SendMessage(request.SendSupportMessageRequest{
		RoomId: "S1", SendId: "U_member", Content: "发票还没开",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if rsp.Content != "发票还没开" {
		t.Errorf("Content = %q", rsp.Content)
	}
	if len(env.messages.messages) != 1 {
		t.Fatalf("落库消息数 = %d, want 1", len(env.messages.messages))
	}
	if len(env.broker.published[constants.RoomChannel("S1")]) != 1 {
		t.Error("消息应推送到房间通道")
	}
}

func TestSendMessageClampsServerKinds(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	// 客服房间不接受客户端指定的任何非聊天种类，文件/图片也不在集合内
	for i, kind := range []int8{message_kind_enum.Join, message_kind_enum.System, message_kind_enum.File} {
		_, err := env.svc.SendMessage(request.SendSupportMessageRequest{
			RoomId: "S1", SendId: "U_member", Content: "hi", Kind: kind,
		})
		if err != nil {
			t.Fatalf("SendMessage kind=%d failed: %v", kind, err)
		}
		if got := env.messages.messages[i].Kind; got != message_kind_enum.Chat {
			t.Errorf("kind=%d 落库为 %d, want Chat", kind, got)
		}
	}
}

func TestSendMessageInWaitingRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Waiting)

	_, err := env.svc.SendMessage(request.SendSupportMessageRequest{
		RoomId: "S1", SendId: "U_member", Content: "hi",
	})
	if !errors.Is(err, errorx.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestSendMessageByOutsider(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	_, err := env.svc.SendMessage(request.SendSupportMessageRequest{
		RoomId: "S1", SendId: "U_other", Content: "hi",
	})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestSendMessageByBannedMember(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)
	env.banGate.banned["U_member"] = true

	_, err := env.svc.SendMessage(request.SendSupportMessageRequest{
		RoomId: "S1", SendId: "U_member", Content: "hi",
	})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if len(env.messages.messages) != 0 {
		t.Error("封禁成员的消息不应落库")
	}
}

// ==================== 结束 ====================

func TestEndActiveRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	if err := env.svc.End(request.EndRoomRequest{RoomId: "S1", OperatorId: "U_member"}); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if env.rooms.rooms["S1"].Status != room_status_enum.Ended {
		t.Error("房间应进入已结束状态")
	}
	if len(env.closer.tornDown) != 1 {
		t.Error("结束后应拆除房间通道")
	}
}

func TestEndAlreadyEndedRoomIsIdempotent(t *testing.T) {
	env := newTestEnv()
	room := env.seedRoom("S1", room_status_enum.Ended)
	room.AdminId = "U_admin"

	if err := env.svc.End(request.EndRoomRequest{RoomId: "S1", OperatorId: "U_admin"}); err != nil {
		t.Errorf("重复结束应幂等返回成功, err = %v", err)
	}
}

func TestEndRejectedRoom(t *testing.T) {
	env := newTestEnv()
	room := env.seedRoom("S1", room_status_enum.Rejected)
	room.AdminId = "U_admin"

	err := env.svc.End(request.EndRoomRequest{RoomId: "S1", OperatorId: "U_admin"})
	if !errors.Is(err, errorx.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestEndByOutsider(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	err := env.svc.End(request.EndRoomRequest{RoomId: "S1", OperatorId: "U_other"})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

// ==================== 已读 ====================

func TestMarkReadByParty(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	if err := env.svc.MarkRead(request.MarkReadRequest{RoomId: "S1", ReaderId: "U_admin"}); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if len(env.messages.markReads) != 1 || env.messages.markReads[0] != "S1/U_admin" {
		t.Errorf("markReads = %v", env.messages.markReads)
	}
}

func TestMarkReadByOutsider(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("S1", room_status_enum.Active)

	err := env.svc.MarkRead(request.MarkReadRequest{RoomId: "S1", ReaderId: "U_other"})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}
