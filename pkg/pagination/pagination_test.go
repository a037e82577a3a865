package pagination

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"正常参数", 2, 10, 2, 10},
		{"负数页码回落到0", -3, 10, 0, 10},
		{"size为0使用默认值", 1, 0, 1, DefaultPageSize},
		{"size为负数使用默认值", 1, -5, 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := Normalize(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("Normalize(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestNewFirstWindow(t *testing.T) {
	// 共 35 条，每页 10 条，总 4 页：窗口 1-4，无前后
	info := New(0, 10, 35)
	if info.Page != 1 {
		t.Errorf("Page = %d, want 1", info.Page)
	}
	if info.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", info.TotalPages)
	}
	if !reflect.DeepEqual(info.PageWindow, []int{1, 2, 3, 4}) {
		t.Errorf("PageWindow = %v, want [1 2 3 4]", info.PageWindow)
	}
	if info.HasPrev || info.HasNext {
		t.Errorf("HasPrev = %v, HasNext = %v, want false false", info.HasPrev, info.HasNext)
	}
}

func TestNewWindowBoundary(t *testing.T) {
	// 共 250 条，每页 10 条，总 25 页
	// 请求第 12 页（0 起始为 11）：窗口应为 11-20，前后都有页
	info := New(11, 10, 250)
	if info.Page != 12 {
		t.Errorf("Page = %d, want 12", info.Page)
	}
	want := []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	if !reflect.DeepEqual(info.PageWindow, want) {
		t.Errorf("PageWindow = %v, want %v", info.PageWindow, want)
	}
	if !info.HasPrev {
		t.Error("HasPrev = false, want true")
	}
	if !info.HasNext {
		t.Error("HasNext = false, want true")
	}
}

func TestNewLastWindow(t *testing.T) {
	// 共 25 页，请求第 25 页：窗口 21-25，有前无后
	info := New(24, 10, 250)
	want := []int{21, 22, 23, 24, 25}
	if !reflect.DeepEqual(info.PageWindow, want) {
		t.Errorf("PageWindow = %v, want %v", info.PageWindow, want)
	}
	if !info.HasPrev {
		t.Error("HasPrev = false, want true")
	}
	if info.HasNext {
		t.Error("HasNext = true, want false")
	}
}

func TestNewPageBeyondTotal(t *testing.T) {
	// 请求页超出总页数时当前页回落到最后一页
	info := New(99, 10, 35)
	if info.Page != 4 {
		t.Errorf("Page = %d, want 4", info.Page)
	}
}

func TestNewEmptyTotal(t *testing.T) {
	info := New(0, 10, 0)
	if info.Page != 1 {
		t.Errorf("Page = %d, want 1", info.Page)
	}
	if info.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", info.TotalPages)
	}
	if len(info.PageWindow) != 0 {
		t.Errorf("PageWindow = %v, want empty", info.PageWindow)
	}
	if info.HasPrev || info.HasNext {
		t.Error("空列表不应有前后页")
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{0, 10, 0},
		{3, 10, 30},
		{-1, 10, 0},
		{2, 0, 2 * DefaultPageSize},
	}
	for _, tt := range tests {
		if got := Offset(tt.page, tt.size); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}
