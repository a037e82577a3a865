package chat

import (
	"testing"

	"fitmall_chat_server/pkg/constants"
)

// newTestConn 构造仅用于 Hub 测试的连接，不携带真实 websocket
func newTestConn(uuid string, buffer int) *UserConn {
	return &UserConn{
		Uuid:     uuid,
		SendBack: make(chan []byte, buffer),
	}
}

func TestHubDeliverFanout(t *testing.T) {
	hub := NewHub()
	c1 := newTestConn("U1", 4)
	c2 := newTestConn("U2", 4)
	c3 := newTestConn("U3", 4)

	channel := constants.RoomChannel("G123")
	hub.Subscribe(channel, c1)
	hub.Subscribe(channel, c2)
	// c3 未订阅该通道

	hub.Deliver(channel, []byte("hello"))

	for _, c := range []*UserConn{c1, c2} {
		select {
		case msg := <-c.SendBack:
			if string(msg) != "hello" {
				t.Errorf("client %s got %q, want hello", c.Uuid, msg)
			}
		default:
			t.Errorf("client %s 未收到消息", c.Uuid)
		}
	}
	select {
	case <-c3.SendBack:
		t.Error("未订阅的连接不应收到消息")
	default:
	}
}

func TestHubDeliverDropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	slow := newTestConn("U1", 1)
	fast := newTestConn("U2", 4)

	channel := constants.RoomChannel("G123")
	hub.Subscribe(channel, slow)
	hub.Subscribe(channel, fast)

	// slow 缓冲填满后第二条应被丢弃，且投递不阻塞
	hub.Deliver(channel, []byte("m1"))
	hub.Deliver(channel, []byte("m2"))

	if got := len(slow.SendBack); got != 1 {
		t.Errorf("慢订阅者缓冲 = %d 条, want 1", got)
	}
	if got := len(fast.SendBack); got != 2 {
		t.Errorf("快订阅者缓冲 = %d 条, want 2", got)
	}
}

func TestHubDeliverSkipsShutdownConn(t *testing.T) {
	hub := NewHub()
	gone := newTestConn("U1", 4)
	alive := newTestConn("U2", 4)

	channel := constants.ChannelOnlineUsers
	hub.Subscribe(channel, gone)
	hub.Subscribe(channel, alive)

	// 登出路径先关连接，Unregister 尚未执行时通道里仍挂着该连接
	gone.CloseConn()
	gone.Shutdown()

	hub.Deliver(channel, []byte("x"))

	if got := len(alive.SendBack); got != 1 {
		t.Errorf("存活订阅者收到 %d 条, want 1", got)
	}
	if _, ok := <-gone.SendBack; ok {
		t.Error("已关停连接不应再收到消息")
	}
}

func TestUserConnShutdownIdempotent(t *testing.T) {
	c := newTestConn("U1", 1)
	if !c.TrySend([]byte("a")) {
		t.Fatal("关停前投递应成功")
	}
	c.Shutdown()
	c.Shutdown()
	if c.TrySend([]byte("b")) {
		t.Error("关停后投递应失败")
	}
	c.CloseConn() // 无底层连接时也不应恐慌
}

func TestHubSubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestConn("U1", 4)

	hub.Subscribe(constants.ChannelPublic, c)
	hub.Subscribe(constants.ChannelPublic, c)
	hub.Deliver(constants.ChannelPublic, []byte("once"))

	if got := len(c.SendBack); got != 1 {
		t.Errorf("重复订阅后收到 %d 条, want 1", got)
	}

	hub.Unsubscribe(constants.ChannelPublic, c)
	hub.Unsubscribe(constants.ChannelPublic, c) // 重复退订无副作用
	hub.Deliver(constants.ChannelPublic, []byte("after"))
	if got := len(c.SendBack); got != 1 {
		t.Errorf("退订后仍收到消息, 缓冲 = %d 条", got)
	}
}

func TestHubUnregisterCleansUp(t *testing.T) {
	hub := NewHub()
	c := newTestConn("U1", 4)
	hub.Register(c)
	hub.Subscribe(constants.ChannelPublic, c)
	hub.Subscribe(constants.RoomChannel("S1"), c)

	if !hub.IsOnline("U1") {
		t.Fatal("注册后应在线")
	}

	hub.Unregister(c)
	if hub.IsOnline("U1") {
		t.Error("注销后不应在线")
	}
	hub.Deliver(constants.ChannelPublic, []byte("x"))
	hub.Deliver(constants.RoomChannel("S1"), []byte("x"))
	if got := len(c.SendBack); got != 0 {
		t.Errorf("注销后仍收到 %d 条消息", got)
	}

	// 幂等：重复注销无副作用
	hub.Unregister(c)
}

func TestHubRegisterTakeover(t *testing.T) {
	hub := NewHub()
	old := newTestConn("U1", 4)
	hub.Register(old)

	// 同一成员新连接顶替旧连接
	replacement := newTestConn("U1", 4)
	hub.Register(replacement)

	// 旧连接断开清理时不应移除新连接的在线状态
	hub.Unregister(old)
	if !hub.IsOnline("U1") {
		t.Error("旧连接注销不应影响新连接的在线状态")
	}
}

func TestHubTearDownRoom(t *testing.T) {
	hub := NewHub()
	c := newTestConn("U1", 4)
	hub.Subscribe(constants.RoomChannel("S1"), c)
	hub.Subscribe(constants.RoomStatusChannel("S1"), c)
	hub.Subscribe(constants.ChannelPublic, c)

	hub.TearDownRoom("S1")

	hub.Deliver(constants.RoomChannel("S1"), []byte("x"))
	hub.Deliver(constants.RoomStatusChannel("S1"), []byte("x"))
	if got := len(c.SendBack); got != 0 {
		t.Errorf("拆除房间后仍收到 %d 条消息", got)
	}

	// 其他通道订阅不受影响
	hub.Deliver(constants.ChannelPublic, []byte("x"))
	if got := len(c.SendBack); got != 1 {
		t.Errorf("公共通道订阅被误删, 缓冲 = %d 条", got)
	}

	// 幂等：重复拆除无副作用
	hub.TearDownRoom("S1")
}

func TestHubOnlineMembers(t *testing.T) {
	hub := NewHub()
	hub.Register(newTestConn("U1", 1))
	hub.Register(newTestConn("U2", 1))

	members := hub.OnlineMembers()
	if len(members) != 2 {
		t.Fatalf("在线成员 = %d, want 2", len(members))
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		seen[m] = true
	}
	if !seen["U1"] || !seen["U2"] {
		t.Errorf("在线成员列表 = %v", members)
	}
}
