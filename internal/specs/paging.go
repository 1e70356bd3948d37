// Package specs defines the per-domain query specifications built from request
// parameters.
//
// Every domain exposes a filter constructor and a count constructor. Both are
// built from the same private criteria function, so a page and its total can
// never disagree about which rows match.
package specs

import (
	"strings"

	"marketplace/internal/specification"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Paging is a 1-based page request.
type Paging struct {
	PageIndex int
	PageSize  int
}

// Normalize clamps the page index to at least 1 and the size to 1..MaxPageSize,
// defaulting to DefaultPageSize.
func (p Paging) Normalize() Paging {
	if p.PageIndex < 1 {
		p.PageIndex = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

type sortKey struct {
	column string
	desc   bool
}

// Shared sort names accepted by list endpoints (case-insensitive).
var (
	sortPriceAsc  = sortKey{"price", false}
	sortPriceDesc = sortKey{"price", true}
	sortName      = sortKey{"name", false}

	// Auto-increment ids follow insertion order and never tie, unlike created_at.
	sortNewest = sortKey{"id", true}
	sortOldest = sortKey{"id", false}
)

var catalogSorts = map[string]sortKey{
	"priceasc":  sortPriceAsc,
	"pricedesc": sortPriceDesc,
	"newest":    sortNewest,
	"oldest":    sortOldest,
	"name":      sortName,
}

// applySort sets the ordering for name, or fallback when name is empty or unknown.
// Only one ordering key is applied. Rows that tie on a non-unique key (price,
// name, rating) have no defined order between them and may shift across pages.
func applySort[T any](b *specification.Builder[T], name string, allowed map[string]sortKey, fallback sortKey) {
	key, ok := allowed[strings.ToLower(name)]
	if !ok {
		key = fallback
	}
	if key.desc {
		b.OrderByDescending(key.column)
	} else {
		b.OrderBy(key.column)
	}
}

// locationTerms appends case-insensitive equality terms for non-empty location fields.
func locationTerms(terms []specification.Criterion, governorate, city string) []specification.Criterion {
	if governorate != "" {
		terms = append(terms, specification.EqualFold("governorate", governorate))
	}
	if city != "" {
		terms = append(terms, specification.EqualFold("city", city))
	}
	return terms
}

// priceTerms treats zero bounds as unset.
func priceTerms(terms []specification.Criterion, minPrice, maxPrice float64) []specification.Criterion {
	if minPrice > 0 {
		terms = append(terms, specification.Gte("price", minPrice))
	}
	if maxPrice > 0 {
		terms = append(terms, specification.Lte("price", maxPrice))
	}
	return terms
}
