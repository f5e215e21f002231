package handler

// paginated is the shared list envelope: 1-based page, total_pages derived.
type paginated[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

func newPaginated[T any](data []T, total int64, page, limit int) paginated[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return paginated[T]{Data: data, Total: total, TotalPages: totalPages, Page: page, Limit: limit}
}
