// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"docforge-ai-api/internal/domain/repository"
)

// PageQuery 分页查询参数
type PageQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

// ToPagination 转换为仓储分页参数
func (q *PageQuery) ToPagination() repository.Pagination {
	return repository.NewPagination(q.Page, q.PageSize)
}
