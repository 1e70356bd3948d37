package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type AccessoryParams struct {
	Search    string
	Category  string
	SpeciesID int64
	SellerID  int64
	MinPrice  float64
	MaxPrice  float64
	InStock   bool
	Sort      string
	Paging
}

func accessoryCriteria(p AccessoryParams) specification.Criterion {
	terms := []specification.Criterion{specification.Eq("is_active", true)}
	if p.Search != "" {
		terms = append(terms, specification.ContainsFold("name", p.Search))
	}
	if c, ok := model.ParseAccessoryCategory(p.Category); ok {
		terms = append(terms, specification.Eq("category", c))
	}
	if p.SpeciesID != 0 {
		terms = append(terms, specification.Eq("species_id", p.SpeciesID))
	}
	if p.SellerID != 0 {
		terms = append(terms, specification.Eq("seller_id", p.SellerID))
	}
	terms = priceTerms(terms, p.MinPrice, p.MaxPrice)
	if p.InStock {
		terms = append(terms, specification.Gte("stock", 1))
	}
	return specification.All(terms...)
}

func NewAccessoryFilterSpec(p AccessoryParams) specification.Specification[model.Accessory] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Accessory](accessoryCriteria(p)).
		Include("Species", "Seller").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, catalogSorts, sortNewest)
	return b.Build()
}

func NewAccessoryCountSpec(p AccessoryParams) specification.Specification[model.Accessory] {
	return specification.New[model.Accessory](accessoryCriteria(p)).Build()
}
