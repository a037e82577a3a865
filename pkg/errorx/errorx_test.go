package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDBError, "数据库错误")

	if !errors.Is(err, cause) {
		t.Error("errors.Is 应能追溯到底层错误")
	}
	if err.Error() != "数据库错误: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeNotFound, "not found")); got != CodeNotFound {
		t.Errorf("GetCode = %d, want %d", got, CodeNotFound)
	}
	// 非 CodeError 回落到服务繁忙
	if got := GetCode(errors.New("plain")); got != CodeServerBusy {
		t.Errorf("GetCode = %d, want %d", got, CodeServerBusy)
	}
	// 包装后的 CodeError 也能提取
	wrapped := fmt.Errorf("outer: %w", ErrRoomFull)
	if got := GetCode(wrapped); got != CodeRoomFull {
		t.Errorf("GetCode = %d, want %d", got, CodeRoomFull)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "聊天室不存在")) {
		t.Error("CodeNotFound 应被识别为未找到")
	}
	if !IsNotFound(errors.New("record not found")) {
		t.Error("gorm 的 record not found 应被识别为未找到")
	}
	if IsNotFound(nil) {
		t.Error("nil 不应被识别为未找到")
	}
	if IsNotFound(ErrServerBusy) {
		t.Error("服务繁忙不应被识别为未找到")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'U1' for key 'open_flag'")) {
		t.Error("MySQL 1062 应被识别为唯一键冲突")
	}
	if !IsDuplicateKey(errors.New("UNIQUE constraint failed: support_room.open_flag")) {
		t.Error("SQLite 唯一约束报错应被识别为唯一键冲突")
	}
	if !IsDuplicateKey(Wrap(errors.New("Duplicate entry 'U1'"), CodeDBError, "创建客服房间")) {
		t.Error("包装后的唯一键冲突应被识别")
	}
	if IsDuplicateKey(nil) {
		t.Error("nil 不应被识别为唯一键冲突")
	}
	if IsDuplicateKey(ErrServerBusy) {
		t.Error("服务繁忙不应被识别为唯一键冲突")
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *CodeError
		code int
	}{
		{ErrInvalidParam, CodeInvalidParam},
		{ErrForbidden, CodeForbidden},
		{ErrAlreadyClaimed, CodeAlreadyClaimed},
		{ErrAlreadyInSession, CodeAlreadyInSession},
		{ErrAlreadyJoined, CodeAlreadyJoined},
		{ErrRoomFull, CodeRoomFull},
		{ErrBadPassword, CodeBadPassword},
		{ErrInvalidCapacity, CodeInvalidCapacity},
		{ErrInvalidTransition, CodeInvalidTransition},
	}
	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("%q Code = %d, want %d", tt.err.Msg, tt.err.Code, tt.code)
		}
	}
}
