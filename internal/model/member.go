package model

import "gorm.io/gorm"

// Member 平台成员
// 身份注册/登录由平台的会员子系统负责，聊天核心只读取展示信息
type Member struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:成员唯一id"`
	Email     string `gorm:"column:email;type:varchar(60);comment:邮箱"`
	Nickname  string `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`
	Telephone string `gorm:"column:telephone;type:char(20);comment:手机号"`
	Avatar    string `gorm:"column:avatar;type:char(255);comment:头像"`
	IsAdmin   int8   `gorm:"column:is_admin;default:0;comment:是否为客服管理员，0.否，1.是"`
}

func (Member) TableName() string {
	return "member"
}
