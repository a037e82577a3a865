// Package sms 提供短信通知服务
// 本文件定义短信服务接口，遵循依赖倒置原则
package sms

import "time"

// SmsService 短信服务接口
// 抽象短信发送操作，支持多种实现（阿里云、本地 mock 等）
// Service 层应依赖此接口而非具体实现
type SmsService interface {
	// SendBanNotice 向被封禁成员发送封禁通知
	// telephone: 手机号码; reason: 封禁原因; bannedUntil: 解封时间，零值表示永久
	SendBanNotice(telephone, reason string, bannedUntil time.Time) error
	// SendUnbanNotice 向已解封成员发送解封通知
	SendUnbanNotice(telephone string) error
}

// 确保 aliyunSmsService 实现了 SmsService 接口
var _ SmsService = (*aliyunSmsService)(nil)
