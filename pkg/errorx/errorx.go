package errorx

import (
	"errors"
	"fmt"
	"strings"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "聊天室不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// 业务状态码常量定义
const (
	CodeSuccess           = 1000 // 成功
	CodeInvalidParam      = 1001 // 请求参数错误
	CodeServerBusy        = 1005 // 服务繁忙
	CodeUnauthorized      = 1006 // 未授权/认证失败
	CodeNotFound          = 1008 // 资源不存在
	CodeDBError           = 1010 // 数据库错误
	CodeCacheError        = 1011 // 缓存错误
	CodeForbidden         = 2001 // 封禁或越权，禁止操作
	CodeInvalidTransition = 2002 // 房间状态不满足操作前置条件
	CodeAlreadyClaimed    = 2003 // 工单已被其他管理员接入
	CodeAlreadyInSession  = 2004 // 成员已有进行中的客服会话
	CodeAlreadyJoined     = 2005 // 已在聊天室中
	CodeRoomFull          = 2006 // 聊天室人数已满
	CodeBadPassword       = 2007 // 聊天室密码错误
	CodeInvalidCapacity   = 2008 // 非法的人数上限
)

// 预定义常用错误实例
// 这些实例既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam      = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy        = New(CodeServerBusy, "服务繁忙")
	ErrForbidden         = New(CodeForbidden, "当前账号已被封禁，无法使用聊天功能")
	ErrInvalidTransition = New(CodeInvalidTransition, "房间状态已变更，请刷新后重试")
	ErrAlreadyClaimed    = New(CodeAlreadyClaimed, "该工单已被其他管理员接入")
	ErrAlreadyInSession  = New(CodeAlreadyInSession, "已有进行中的客服会话")
	ErrAlreadyJoined     = New(CodeAlreadyJoined, "已在该聊天室中")
	ErrRoomFull          = New(CodeRoomFull, "聊天室人数已满")
	ErrBadPassword       = New(CodeBadPassword, "聊天室密码错误")
	ErrInvalidCapacity   = New(CodeInvalidCapacity, "人数上限超出允许范围")
)

// IsNotFound 检查错误是否为"未找到"类型（包括 gorm.ErrRecordNotFound）
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsDuplicateKey 检查错误是否为唯一键冲突
// 按各方言驱动的报错文本匹配（MySQL 1062 / SQLite UNIQUE 约束）
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicated key")
}
