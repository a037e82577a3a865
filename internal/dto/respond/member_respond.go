package respond

// MemberRespond 成员信息响应
// 使用位置:
//   - internal/service/member/service.go: GetMemberInfo
type MemberRespond struct {
	Uuid      string `json:"uuid"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Telephone string `json:"telephone"`
	Avatar    string `json:"avatar"`
	IsAdmin   int8   `json:"is_admin"`
	Online    bool   `json:"online"`
}
