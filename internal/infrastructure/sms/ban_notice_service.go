package sms

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"fitmall_chat_server/internal/config"
	myredis "fitmall_chat_server/internal/dao/redis"
	"fitmall_chat_server/pkg/errorx"
)

const noticeThrottleTTL = time.Minute

type localSmsService struct {
	cache myredis.CacheService
}

func (s *localSmsService) SendBanNotice(telephone, reason string, bannedUntil time.Time) error {
	until := "永久"
	if !bannedUntil.IsZero() {
		until = bannedUntil.Format("2006-01-02 15:04")
	}
	fmt.Printf("【MockSMS】手机号: %s, 封禁通知, 原因: %s, 解封时间: %s\n", telephone, reason, until)
	return nil
}

func (s *localSmsService) SendUnbanNotice(telephone string) error {
	fmt.Printf("【MockSMS】手机号: %s, 解封通知\n", telephone)
	return nil
}

func shouldUseMock(smsCfg config.SmsConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("FITMALL_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// configs/config.toml 默认是占位字符串；没配真实 AK 时默认走 mock，便于本机跑通封禁通知链路
	ak := strings.ToLower(strings.TrimSpace(smsCfg.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(smsCfg.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// aliyunSmsService 阿里云短信服务实现
type aliyunSmsService struct {
	client *dysmsapi20170525.Client
	cache  myredis.CacheService // 用于同号码通知的频率限制
}

// Init 初始化阿里云 SMS Client 并创建服务实例
// cacheService: 缓存服务接口实例（用于频率限制）
func Init(cacheService myredis.CacheService) (SmsService, error) {
	smsCfg := config.GetConfig().SmsConfig
	if shouldUseMock(smsCfg) {
		zap.L().Warn("SMS Service 使用本地 Mock 模式（不调用第三方短信）")
		return &localSmsService{cache: cacheService}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(smsCfg.AccessKeyID),
		AccessKeySecret: tea.String(smsCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, err
	}

	return &aliyunSmsService{client: client, cache: cacheService}, nil
}

// NewAliyunSmsService 创建阿里云短信服务实例（用于依赖注入）
func NewAliyunSmsService(client *dysmsapi20170525.Client, cacheService myredis.CacheService) SmsService {
	return &aliyunSmsService{
		client: client,
		cache:  cacheService,
	}
}

// SendBanNotice 发送封禁通知短信
// 同一号码一分钟内只发一条，避免重复封禁操作刷短信
func (s *aliyunSmsService) SendBanNotice(telephone, reason string, bannedUntil time.Time) error {
	smsCfg := config.GetConfig().SmsConfig
	templateCode := smsCfg.BanTemplateCode

	until := "永久"
	if !bannedUntil.IsZero() {
		until = bannedUntil.Format("2006-01-02 15:04")
	}
	param := fmt.Sprintf("{\"reason\":%q,\"until\":%q}", reason, until)
	return s.send(telephone, templateCode, param)
}

// SendUnbanNotice 发送解封通知短信
func (s *aliyunSmsService) SendUnbanNotice(telephone string) error {
	smsCfg := config.GetConfig().SmsConfig
	return s.send(telephone, smsCfg.UnbanTemplateCode, "{}")
}

// send 发送核心逻辑
// 包含：频率限制检查、占位预存、阿里云 API 调用以及失败回滚
func (s *aliyunSmsService) send(telephone, templateCode, templateParam string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	// 频率限制检查 (Throttling)
	key := "sms_notice_" + telephone
	mark, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if mark != "" {
		return errorx.New(errorx.CodeInvalidParam, "通知发送过于频繁，请稍后重试")
	}

	// 先占位，后发送。如果先发送后占位，在极高并发下可能被绕过频率限制
	if err := s.cache.Set(context.Background(), key, "1", noticeThrottleTTL); err != nil {
		zap.L().Error("缓存写入占位失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	smsCfg := config.GetConfig().SmsConfig
	signName := smsCfg.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String(templateParam),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err))
		// 发送失败时删除占位 Key，允许重试
		_ = s.cache.Delete(context.Background(), key)
		return errorx.ErrServerBusy
	}

	// 即使 err 为 nil，也需要看 rsp.Body.Code 是否为 "OK"
	zap.L().Info("短信发送接口响应", zap.String("response", *util.ToJSONString(rsp)))
	return nil
}
