package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type OrderParams struct {
	BuyerID int64
	Status  string
	Sort    string
	Paging
}

var orderSorts = map[string]sortKey{
	"newest": sortNewest,
	"oldest": sortOldest,
	"total":  {"total", true},
}

func orderCriteria(p OrderParams) specification.Criterion {
	var terms []specification.Criterion
	if p.BuyerID != 0 {
		terms = append(terms, specification.Eq("buyer_id", p.BuyerID))
	}
	if s, ok := model.ParseOrderStatus(p.Status); ok {
		terms = append(terms, specification.Eq("status", s))
	}
	return specification.All(terms...)
}

func NewOrderFilterSpec(p OrderParams) specification.Specification[model.Order] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Order](orderCriteria(p)).
		Include("Items", "Items.Product").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, orderSorts, sortNewest)
	return b.Build()
}

func NewOrderCountSpec(p OrderParams) specification.Specification[model.Order] {
	return specification.New[model.Order](orderCriteria(p)).Build()
}

// NewOrderForBuyerSpec loads one order with its items, scoped to its buyer.
func NewOrderForBuyerSpec(orderID, buyerID int64) specification.Specification[model.Order] {
	return specification.New[model.Order](specification.All(
		specification.Eq("id", orderID),
		specification.Eq("buyer_id", buyerID),
	)).Include("Items").ForUpdate().Build()
}
