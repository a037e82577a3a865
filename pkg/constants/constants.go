package constants

const (
	CHANNEL_SIZE  = 100 // 通道大小
	REDIS_TIMEOUT = 1   // redis timeout (分钟)

	// 在线成员集合的 Redis key
	ONLINE_MEMBER_SET = "online_members"
)
