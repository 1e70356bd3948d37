package repository

import (
	"context"
	"encoding/json"

	"marketplace/internal/specification"
)

// PaginationResponse is one page of results plus the total match count.
// TotalPages is derived from Count and PageSize, never stored.
type PaginationResponse[T any] struct {
	PageSize  int   `json:"page_size"`
	PageIndex int   `json:"page_index"`
	Count     int64 `json:"count"`
	Data      []T   `json:"data"`
}

func (p PaginationResponse[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.Count + int64(p.PageSize) - 1) / int64(p.PageSize))
}

func (p PaginationResponse[T]) MarshalJSON() ([]byte, error) {
	data := p.Data
	if data == nil {
		data = []T{}
	}
	return json.Marshal(struct {
		PageSize   int   `json:"page_size"`
		PageIndex  int   `json:"page_index"`
		Count      int64 `json:"count"`
		TotalPages int   `json:"total_pages"`
		Data       []T   `json:"data"`
	}{p.PageSize, p.PageIndex, p.Count, p.TotalPages(), data})
}

// Paginate runs the windowed filter and the count-only evaluation and combines
// them into one page.
func Paginate[T any, K comparable](
	ctx context.Context,
	repo *Repository[T, K],
	filter, count specification.Specification[T],
	pageIndex, pageSize int,
) (*PaginationResponse[T], error) {
	items, err := repo.GetAllWithSpecification(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repo.GetCount(ctx, count)
	if err != nil {
		return nil, err
	}
	return &PaginationResponse[T]{
		PageSize:  pageSize,
		PageIndex: pageIndex,
		Count:     total,
		Data:      items,
	}, nil
}

// MapPage converts the items of a page, keeping its paging fields.
func MapPage[T, U any](p *PaginationResponse[T], fn func(T) U) *PaginationResponse[U] {
	out := make([]U, len(p.Data))
	for i, v := range p.Data {
		out[i] = fn(v)
	}
	return &PaginationResponse[U]{
		PageSize:  p.PageSize,
		PageIndex: p.PageIndex,
		Count:     p.Count,
		Data:      out,
	}
}
