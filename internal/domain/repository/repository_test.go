package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationClamps(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     Pagination
	}{
		{"defaults", 0, 0, Pagination{Page: 1, PageSize: 20}},
		{"negative", -3, -1, Pagination{Page: 1, PageSize: 20}},
		{"normal", 2, 50, Pagination{Page: 2, PageSize: 50}},
		{"oversized page size", 1, 500, Pagination{Page: 1, PageSize: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.pageSize))
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
}

func TestNewPagedResultTotalPages(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}

	result := NewPagedResult([]int{1, 2, 3}, 25, p)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(25), result.Total)

	result = NewPagedResult([]int{}, 30, p)
	assert.Equal(t, 3, result.TotalPages)

	result = NewPagedResult([]int{}, 0, p)
	assert.Equal(t, 0, result.TotalPages)
}
