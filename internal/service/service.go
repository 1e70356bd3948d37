// Package service holds the marketplace use cases. Every operation opens its
// own unit of work from the shared factory and finishes with it.
package service

import (
	"context"
	"errors"

	"marketplace/internal/repository"
	"marketplace/internal/specification"
	"marketplace/internal/specs"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrOutOfStock        = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidOrderState = errors.New("order status does not allow this change")
)

// page returns one normalized page of filter results together with the count
// of every row matching count.
func page[T any, K comparable](
	ctx context.Context,
	repo *repository.Repository[T, K],
	filter, count specification.Specification[T],
	pg specs.Paging,
) (*repository.PaginationResponse[T], error) {
	pg = pg.Normalize()
	return repository.Paginate(ctx, repo, filter, count, pg.PageIndex, pg.PageSize)
}
