package multiroom

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
	"fitmall_chat_server/pkg/enum/multiroom/role_enum"
	"fitmall_chat_server/pkg/enum/multiroom/room_status_enum"
	"fitmall_chat_server/pkg/enum/multiroom/room_type_enum"
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

type fakeMultiRoomRepo struct {
	rooms map[string]*model.MultiRoom
}

func (f *fakeMultiRoomRepo) FindByUuid(uuid string) (*model.MultiRoom, error) {
	if r, ok := f.rooms[uuid]; ok {
		return r, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "聊天室不存在")
}

func (f *fakeMultiRoomRepo) FindByUuidForUpdate(uuid string) (*model.MultiRoom, error) {
	return f.FindByUuid(uuid)
}

func (f *fakeMultiRoomRepo) GetRoomList(page, pageSize int) ([]model.MultiRoom, int64, error) {
	var list []model.MultiRoom
	for _, r := range f.rooms {
		if r.Status == room_status_enum.Active {
			list = append(list, *r)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeMultiRoomRepo) Create(room *model.MultiRoom) error {
	f.rooms[room.Uuid] = room
	return nil
}

func (f *fakeMultiRoomRepo) UpdateStatus(uuid string, status int8) error {
	if r, ok := f.rooms[uuid]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeMultiRoomRepo) IncrementMemberCnt(uuid string) error {
	if r, ok := f.rooms[uuid]; ok {
		r.MemberCnt++
	}
	return nil
}

func (f *fakeMultiRoomRepo) DecrementMemberCnt(uuid string) error {
	if r, ok := f.rooms[uuid]; ok {
		r.MemberCnt--
	}
	return nil
}

type fakeParticipantRepo struct {
	participants []*model.Participant
}

func (f *fakeParticipantRepo) Create(participant *model.Participant) error {
	f.participants = append(f.participants, participant)
	return nil
}

func (f *fakeParticipantRepo) FindActive(roomUuid, memberId string) (*model.Participant, error) {
	for _, p := range f.participants {
		if p.RoomUuid == roomUuid && p.MemberId == memberId && !p.LeftAt.Valid {
			return p, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "成员不在聊天室内")
}

func (f *fakeParticipantRepo) FindActiveByRoom(roomUuid string) ([]model.Participant, error) {
	var list []model.Participant
	for _, p := range f.participants {
		if p.RoomUuid == roomUuid && !p.LeftAt.Valid {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (f *fakeParticipantRepo) CountActive(roomUuid string) (int64, error) {
	list, _ := f.FindActiveByRoom(roomUuid)
	return int64(len(list)), nil
}

func (f *fakeParticipantRepo) MarkLeft(roomUuid, memberId string, leftAt time.Time) (int64, error) {
	for _, p := range f.participants {
		if p.RoomUuid == roomUuid && p.MemberId == memberId && !p.LeftAt.Valid {
			p.LeftAt.Time, p.LeftAt.Valid = leftAt, true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeParticipantRepo) UpdateLastReadAt(roomUuid, memberId string, readAt time.Time) error {
	for _, p := range f.participants {
		if p.RoomUuid == roomUuid && p.MemberId == memberId && !p.LeftAt.Valid {
			p.LastReadAt.Time, p.LastReadAt.Valid = readAt, true
		}
	}
	return nil
}

type fakeMultiMessageRepo struct {
	messages []model.MultiMessage
}

func (f *fakeMultiMessageRepo) Create(message *model.MultiMessage) error {
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMultiMessageRepo) FindByRoomUuid(roomUuid string, page, pageSize int) ([]model.MultiMessage, int64, error) {
	return f.messages, int64(len(f.messages)), nil
}

func (f *fakeMultiMessageRepo) CountUnread(roomUuid, memberId string, lastReadAt time.Time) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.RoomUuid == roomUuid && m.SendId != memberId && m.SendAt.After(lastReadAt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeMultiMessageRepo) SoftDelete(messageUuid int64) error { return nil }

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

type fakePresence struct {
	online map[string]bool
}

func (f *fakePresence) IsOnline(memberId string) bool { return f.online[memberId] }
func (f *fakePresence) OnlineMembers() []string {
	var list []string
	for m := range f.online {
		list = append(list, m)
	}
	return list
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
	svc          *multiRoomService
	rooms        *fakeMultiRoomRepo
	participants *fakeParticipantRepo
	messages     *fakeMultiMessageRepo
	broker       *fakeBroker
	closer       *fakeRoomCloser
	presence     *fakePresence
	banGate      *fakeBanGate
}

func newTestEnv() *testEnv {
	memberRepo := &fakeMemberRepo{members: map[string]*model.Member{
		"U_creator":  {Uuid: "U_creator", Nickname: "群主"},
		"U_member":   {Uuid: "U_member", Nickname: "成员甲", Avatar: "a.png"},
		"U_admin":    {Uuid: "U_admin", Nickname: "平台管理员", IsAdmin: 1},
		"U_stranger": {Uuid: "U_stranger", Nickname: "路人"},
	}}
	roomRepo := &fakeMultiRoomRepo{rooms: make(map[string]*model.MultiRoom)}
	participantRepo := &fakeParticipantRepo{}
	messageRepo := &fakeMultiMessageRepo{}
	repos := &repository.Repositories{
		Member:       memberRepo,
		MultiRoom:    roomRepo,
		Participant:  participantRepo,
		MultiMessage: messageRepo,
	}
	broker := &fakeBroker{}
	closer := &fakeRoomCloser{}
	presence := &fakePresence{online: make(map[string]bool)}
	banGate := &fakeBanGate{banned: make(map[string]bool)}
	svc := NewMultiRoomService(repos, inlineCache{}, broker, closer, presence, banGate)
	return &testEnv{
		svc:          svc,
		rooms:        roomRepo,
		participants: participantRepo,
		messages:     messageRepo,
		broker:       broker,
		closer:       closer,
		presence:     presence,
		banGate:      banGate,
	}
}

func (e *testEnv) seedRoom(uuid string, status int8) *model.MultiRoom {
	room := &model.MultiRoom{
		Uuid:            uuid,
		Name:            "跑步打卡群",
		CreatorId:       "U_creator",
		MaxParticipants: 10,
		MemberCnt:       2,
		Status:          status,
		RoomType:        room_type_enum.Public,
	}
	e.rooms.rooms[uuid] = room
	e.participants.participants = append(e.participants.participants,
		&model.Participant{RoomUuid: uuid, MemberId: "U_creator", Role: role_enum.Creator, JoinedAt: time.Now()},
		&model.Participant{RoomUuid: uuid, MemberId: "U_member", Role: role_enum.Member, JoinedAt: time.Now()},
	)
	return room
}

// ==================== 建室参数校验 ====================

func TestCreateRoomCapacityOutOfRange(t *testing.T) {
	env := newTestEnv()
	for _, capacity := range []int{0, -1, 501} {
		_, err := env.svc.CreateRoom(request.CreateMultiRoomRequest{
			CreatorId: "U_creator", Name: "x", MaxParticipants: capacity,
		})
		if !errors.Is(err, errorx.ErrInvalidCapacity) {
			t.Errorf("capacity=%d err = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestCreateRoomPrivateNeedsPassword(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.CreateRoom(request.CreateMultiRoomRequest{
		CreatorId: "U_creator", Name: "x", MaxParticipants: 10,
		RoomType: room_type_enum.Private,
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("err = %v, want CodeInvalidParam", err)
	}
}

func TestCreateRoomByBannedMember(t *testing.T) {
	env := newTestEnv()
	env.banGate.banned["U_creator"] = true
	_, err := env.svc.CreateRoom(request.CreateMultiRoomRequest{
		CreatorId: "U_creator", Name: "x", MaxParticipants: 10,
	})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

// ==================== 发消息 ====================

func TestSendMessageByActiveParticipant(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	rsp, err := env.svc.SendMessage(request.SendMultiMessageRequest{
		RoomId: "G1", SendId: "U_member", Content: "今晚八点开跑",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if rsp.Content != "今晚八点开跑" {
		t.Errorf("Content = %q", rsp.Content)
	}
	if len(env.broker.published[constants.RoomChannel("G1")]) != 1 {
		t.Error("消息应推送到房间通道")
	}
}

func TestSendMessageByNonParticipant(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	_, err := env.svc.SendMessage(request.SendMultiMessageRequest{
		RoomId: "G1", SendId: "U_stranger", Content: "hi",
	})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestSendMessageInClosedRoom(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Closed)

	_, err := env.svc.SendMessage(request.SendMultiMessageRequest{
		RoomId: "G1", SendId: "U_member", Content: "hi",
	})
	if !errors.Is(err, errorx.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

// ==================== 已读游标 ====================

func TestMarkReadAdvancesCursor(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	if err := env.svc.MarkRead(request.MarkReadRequest{RoomId: "G1", ReaderId: "U_member"}); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	p, err := env.participants.FindActive("G1", "U_member")
	if err != nil {
		t.Fatal(err)
	}
	if !p.LastReadAt.Valid {
		t.Error("已读游标未推进")
	}
}

func TestMarkReadByNonParticipant(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	err := env.svc.MarkRead(request.MarkReadRequest{RoomId: "G1", ReaderId: "U_stranger"})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

// ==================== 成员列表 ====================

func TestGetParticipantList(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)
	env.presence.online["U_member"] = true

	rsp, err := env.svc.GetParticipantList("G1", request.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("GetParticipantList failed: %v", err)
	}
	if len(rsp.List) != 2 {
		t.Fatalf("成员数 = %d, want 2", len(rsp.List))
	}
	for _, p := range rsp.List {
		switch p.MemberId {
		case "U_member":
			if !p.Online {
				t.Error("U_member 应显示在线")
			}
			if p.Nickname != "成员甲" || p.Avatar != "a.png" {
				t.Errorf("展示信息未回填: %+v", p)
			}
		case "U_creator":
			if p.Online {
				t.Error("U_creator 应显示离线")
			}
			if p.Role != role_enum.Creator {
				t.Errorf("Role = %d, want Creator", p.Role)
			}
		}
	}
}

// ==================== 关闭 ====================

func TestCloseRoomByCreator(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	if err := env.svc.CloseRoom(request.CloseMultiRoomRequest{RoomId: "G1", OperatorId: "U_creator"}); err != nil {
		t.Fatalf("CloseRoom failed: %v", err)
	}
	if env.rooms.rooms["G1"].Status != room_status_enum.Closed {
		t.Error("聊天室应进入已关闭状态")
	}
	if len(env.broker.published[constants.RoomStatusChannel("G1")]) != 1 {
		t.Error("状态变更应推送到状态通道")
	}
	if len(env.closer.tornDown) != 1 {
		t.Error("关闭后应拆除房间通道")
	}
}

func TestCloseRoomByPlatformAdmin(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	if err := env.svc.CloseRoom(request.CloseMultiRoomRequest{RoomId: "G1", OperatorId: "U_admin"}); err != nil {
		t.Errorf("平台管理员应可关闭聊天室, err = %v", err)
	}
}

func TestCloseRoomByOrdinaryMember(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Active)

	err := env.svc.CloseRoom(request.CloseMultiRoomRequest{RoomId: "G1", OperatorId: "U_member"})
	if !errors.Is(err, errorx.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCloseRoomIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.seedRoom("G1", room_status_enum.Closed)

	if err := env.svc.CloseRoom(request.CloseMultiRoomRequest{RoomId: "G1", OperatorId: "U_creator"}); err != nil {
		t.Errorf("重复关闭应幂等返回成功, err = %v", err)
	}
}
