// Package pagination 提供列表接口统一的分页协议
// 请求页码从 0 开始，响应页码从 1 开始
// 响应携带一个最多 10 页的固定宽度页码窗口，
// has_prev/has_next 基于窗口边界计算，而非总页数
package pagination

// WindowSize 页码窗口宽度
const WindowSize = 10

// DefaultPageSize 未指定 size 时的默认每页条数
const DefaultPageSize = 20

// PageInfo 分页响应的公共字段
type PageInfo struct {
	Page       int   `json:"page"`        // 当前页（1 起始）
	Size       int   `json:"size"`        // 每页条数
	Total      int64 `json:"total"`       // 总条数
	TotalPages int   `json:"total_pages"` // 总页数
	PageWindow []int `json:"page_window"` // 页码窗口（最多 10 个页码）
	HasPrev    bool  `json:"has_prev"`    // 窗口之前是否还有页
	HasNext    bool  `json:"has_next"`    // 窗口之后是否还有页
}

// Normalize 规范化请求参数
// page 为 0 起始页码，size 非法时回落到默认值
func Normalize(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return page, size
}

// New 根据 0 起始页码、每页条数和总条数计算分页信息
func New(page, size int, total int64) PageInfo {
	page, size = Normalize(page, size)
	totalPages := int((total + int64(size) - 1) / int64(size))

	current := page + 1
	if totalPages > 0 && current > totalPages {
		current = totalPages
	}

	// 窗口起点对齐到 10 的倍数 + 1：1-10, 11-20, ...
	start := ((current - 1) / WindowSize) * WindowSize
	end := start + WindowSize
	if end > totalPages {
		end = totalPages
	}
	window := make([]int, 0, WindowSize)
	for p := start + 1; p <= end; p++ {
		window = append(window, p)
	}

	return PageInfo{
		Page:       current,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		PageWindow: window,
		HasPrev:    start > 0,
		HasNext:    end < totalPages,
	}
}

// Offset 计算数据库查询偏移量
func Offset(page, size int) int {
	page, size = Normalize(page, size)
	return page * size
}
