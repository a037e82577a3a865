package support

import (
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmall_chat_server/internal/dao/mysql/repository"
	"fitmall_chat_server/internal/dto/request"
	"fitmall_chat_server/internal/model"
	"fitmall_chat_server/pkg/enum/support/room_status_enum"
	"fitmall_chat_server/pkg/errorx"
)

// newDBEnv 基于内存 sqlite 的测试装配，覆盖事务路径与并发性质
// 单连接串行化写入，事务语义与线上一致
func newDBEnv(t *testing.T) (*supportService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Member{}, &model.PreChatQuestion{},
		&model.SupportRoom{}, &model.SupportMessage{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	members := []model.Member{
		{Uuid: "U_member", Nickname: "成员甲"},
		{Uuid: "U_admin_a", Nickname: "客服甲", IsAdmin: 1},
		{Uuid: "U_admin_b", Nickname: "客服乙", IsAdmin: 1},
		{Uuid: "U_admin_c", Nickname: "客服丙", IsAdmin: 1},
	}
	if err := db.Create(&members).Error; err != nil {
		t.Fatalf("写入成员失败: %v", err)
	}

	repos := repository.NewRepositories(db)
	svc := NewSupportService(repos, inlineCache{}, &fakeBroker{}, &fakeRoomCloser{},
		&fakeBanGate{banned: make(map[string]bool)})
	return svc, db
}

func countOpenRooms(t *testing.T, db *gorm.DB, memberId string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&model.SupportRoom{}).
		Where("member_id = ? AND status IN ?", memberId,
			[]int8{room_status_enum.Waiting, room_status_enum.Active}).
		Count(&n).Error
	if err != nil {
		t.Fatalf("统计非终态房间失败: %v", err)
	}
	return n
}

func TestCreateFromQuestionPersists(t *testing.T) {
	svc, db := newDBEnv(t)

	rsp, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "订单问题", QuestionDetail: "发货慢",
	})
	if err != nil {
		t.Fatalf("CreateFromQuestion failed: %v", err)
	}
	if rsp.Status != room_status_enum.Waiting {
		t.Errorf("Status = %d, want Waiting", rsp.Status)
	}
	if got := countOpenRooms(t, db, "U_member"); got != 1 {
		t.Errorf("非终态房间数 = %d, want 1", got)
	}

	// 问卷应回填房间uuid
	var question model.PreChatQuestion
	if err := db.Where("member_id = ?", "U_member").First(&question).Error; err != nil {
		t.Fatalf("查询问卷失败: %v", err)
	}
	if question.RoomUuid != rsp.RoomId {
		t.Errorf("问卷回填房间 = %q, want %q", question.RoomUuid, rsp.RoomId)
	}
}

func TestCreateFromQuestionRejectsSecondOpenRoom(t *testing.T) {
	svc, db := newDBEnv(t)

	if _, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "订单问题",
	}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "退款问题",
	})
	if !errors.Is(err, errorx.ErrAlreadyInSession) {
		t.Errorf("err = %v, want ErrAlreadyInSession", err)
	}
	if got := countOpenRooms(t, db, "U_member"); got != 1 {
		t.Errorf("非终态房间数 = %d, want 1", got)
	}
}

func TestCreateFromQuestionAfterEnd(t *testing.T) {
	svc, _ := newDBEnv(t)

	first, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "订单问题",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.End(request.EndRoomRequest{RoomId: first.RoomId, OperatorId: "U_member"}); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	// 终态释放唯一标记后可再次发起会话
	if _, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "退款问题",
	}); err != nil {
		t.Errorf("结束后再次发起会话失败: %v", err)
	}
}

func TestConcurrentCreateFromQuestionSingleWinner(t *testing.T) {
	svc, db := newDBEnv(t)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateFromQuestion(request.CreateQuestionRequest{
				MemberId: "U_member", QuestionType: "订单问题",
			})
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errorx.GetCode(err) == errorx.CodeAlreadyInSession:
		default:
			t.Errorf("并发发起会话意外错误: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("并发发起会话成功 %d 次, want 1", wins)
	}
	if got := countOpenRooms(t, db, "U_member"); got != 1 {
		t.Errorf("非终态房间数 = %d, want 1", got)
	}
}

func TestConcurrentClaimExactlyOnce(t *testing.T) {
	svc, _ := newDBEnv(t)

	room, err := svc.CreateFromQuestion(request.CreateQuestionRequest{
		MemberId: "U_member", QuestionType: "订单问题",
	})
	if err != nil {
		t.Fatal(err)
	}

	admins := []string{"U_admin_a", "U_admin_b", "U_admin_c"}
	var wg sync.WaitGroup
	errs := make([]error, len(admins))
	for i, admin := range admins {
		wg.Add(1)
		go func(i int, admin string) {
			defer wg.Done()
			_, errs[i] = svc.Claim(request.ClaimRoomRequest{RoomId: room.RoomId, AdminId: admin})
		}(i, admin)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errorx.ErrAlreadyClaimed):
		default:
			t.Errorf("并发认领意外错误: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("并发认领成功 %d 次, want 1", wins)
	}
}
