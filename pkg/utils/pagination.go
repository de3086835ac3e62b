package utils

import "ticketdesk/pkg/constants"

// NormalizePage 规范化分页参数: page>=1, limit在[1,100]内, 越界取默认值
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}
	return page, limit
}

// NewPagination 计算分页元信息
func NewPagination(total int64, page, limit int) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
