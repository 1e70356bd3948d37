package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

// AnimalParams filters active animal listings. Zero values mean "no constraint".
type AnimalParams struct {
	Search      string
	SpeciesID   int64
	OwnerID     int64
	Gender      string
	MinPrice    float64
	MaxPrice    float64
	MinAge      int
	MaxAge      int
	Governorate string
	City        string
	Sort        string
	Paging
}

func animalCriteria(p AnimalParams) specification.Criterion {
	terms := []specification.Criterion{specification.Eq("is_active", true)}
	if p.Search != "" {
		terms = append(terms, specification.ContainsFold("name", p.Search))
	}
	if p.SpeciesID != 0 {
		terms = append(terms, specification.Eq("species_id", p.SpeciesID))
	}
	if p.OwnerID != 0 {
		terms = append(terms, specification.Eq("owner_id", p.OwnerID))
	}
	if g, ok := model.ParseGender(p.Gender); ok {
		terms = append(terms, specification.Eq("gender", g))
	}
	terms = priceTerms(terms, p.MinPrice, p.MaxPrice)
	if p.MinAge > 0 {
		terms = append(terms, specification.Gte("age_months", p.MinAge))
	}
	if p.MaxAge > 0 {
		terms = append(terms, specification.Lte("age_months", p.MaxAge))
	}
	terms = locationTerms(terms, p.Governorate, p.City)
	return specification.All(terms...)
}

func NewAnimalFilterSpec(p AnimalParams) specification.Specification[model.Animal] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Animal](animalCriteria(p)).
		Include("Species", "Owner").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, catalogSorts, sortNewest)
	return b.Build()
}

func NewAnimalCountSpec(p AnimalParams) specification.Specification[model.Animal] {
	return specification.New[model.Animal](animalCriteria(p)).Build()
}

// NewAnimalDetailSpec loads one active animal with its species and owner.
func NewAnimalDetailSpec(id int64) specification.Specification[model.Animal] {
	return specification.New[model.Animal](specification.All(
		specification.Eq("id", id),
		specification.Eq("is_active", true),
	)).Include("Species", "Owner").Build()
}

func NewSpeciesSpec(search string) specification.Specification[model.Species] {
	var crit specification.Criterion
	if search != "" {
		crit = specification.ContainsFold("name", search)
	}
	return specification.New[model.Species](crit).OrderBy("name").Build()
}
