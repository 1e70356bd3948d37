package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type PharmacyParams struct {
	Search      string
	Governorate string
	City        string
	Open24Hours bool
	Sort        string
	Paging
}

var pharmacySorts = map[string]sortKey{
	"name":   sortName,
	"newest": sortNewest,
	"oldest": sortOldest,
}

func pharmacyCriteria(p PharmacyParams) specification.Criterion {
	var terms []specification.Criterion
	if p.Search != "" {
		terms = append(terms, specification.AnyContainsFold(p.Search, "name", "address"))
	}
	terms = locationTerms(terms, p.Governorate, p.City)
	if p.Open24Hours {
		terms = append(terms, specification.Eq("open_24_hours", true))
	}
	return specification.All(terms...)
}

func NewPharmacyFilterSpec(p PharmacyParams) specification.Specification[model.Pharmacy] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Pharmacy](pharmacyCriteria(p)).Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, pharmacySorts, sortName)
	return b.Build()
}

func NewPharmacyCountSpec(p PharmacyParams) specification.Specification[model.Pharmacy] {
	return specification.New[model.Pharmacy](pharmacyCriteria(p)).Build()
}

type ProductParams struct {
	Search               string
	Category             string
	PharmacyID           int64
	MinPrice             float64
	MaxPrice             float64
	InStock              bool
	RequiresPrescription *bool
	Sort                 string
	Paging
}

func productCriteria(p ProductParams) specification.Criterion {
	var terms []specification.Criterion
	if p.Search != "" {
		terms = append(terms, specification.ContainsFold("name", p.Search))
	}
	if c, ok := model.ParseProductCategory(p.Category); ok {
		terms = append(terms, specification.Eq("category", c))
	}
	if p.PharmacyID != 0 {
		terms = append(terms, specification.Eq("pharmacy_id", p.PharmacyID))
	}
	terms = priceTerms(terms, p.MinPrice, p.MaxPrice)
	if p.InStock {
		terms = append(terms, specification.Gte("stock", 1))
	}
	if p.RequiresPrescription != nil {
		terms = append(terms, specification.Eq("requires_prescription", *p.RequiresPrescription))
	}
	return specification.All(terms...)
}

func NewProductFilterSpec(p ProductParams) specification.Specification[model.Product] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Product](productCriteria(p)).
		Include("Pharmacy").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, catalogSorts, sortName)
	return b.Build()
}

func NewProductCountSpec(p ProductParams) specification.Specification[model.Product] {
	return specification.New[model.Product](productCriteria(p)).Build()
}

// NewProductsForOrderSpec reads the given products with row locks, for stock
// checks inside an open unit of work transaction.
func NewProductsForOrderSpec(ids []int64) specification.Specification[model.Product] {
	return specification.New[model.Product](specification.In("id", ids)).
		OrderBy("id").
		ForUpdate().
		Build()
}
