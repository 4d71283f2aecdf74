package pagination

// Page 分页信息，结构与移动端约定一致
type Page struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// New 根据 page/limit/total 计算分页信息
func New(page, limit int, total int64) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	skip := int64(page-1) * int64(limit)
	return Page{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     skip+int64(limit) < total,
		HasPrev:     page > 1,
	}
}

// ClampLimit 把 limit 限制在 [1, max]，非法值回退到 def
func ClampLimit(limit, def, max int) int {
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
