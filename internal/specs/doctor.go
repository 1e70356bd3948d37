package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type DoctorParams struct {
	Search        string
	Specialty     string
	Governorate   string
	City          string
	MinExperience int
	VerifiedOnly  bool
	Sort          string
	Paging
}

var doctorSorts = map[string]sortKey{
	"rating":     {"rating", true},
	"experience": {"years_of_experience", true},
	"name":       {"full_name", false},
	"newest":     sortNewest,
}

func doctorCriteria(p DoctorParams) specification.Criterion {
	var terms []specification.Criterion
	if p.Search != "" {
		terms = append(terms, specification.AnyContainsFold(p.Search, "full_name", "clinic_name"))
	}
	if s, ok := model.ParseSpecialty(p.Specialty); ok {
		terms = append(terms, specification.Eq("specialty", s))
	}
	terms = locationTerms(terms, p.Governorate, p.City)
	if p.MinExperience > 0 {
		terms = append(terms, specification.Gte("years_of_experience", p.MinExperience))
	}
	if p.VerifiedOnly {
		terms = append(terms, specification.Eq("is_verified", true))
	}
	return specification.All(terms...)
}

func NewDoctorFilterSpec(p DoctorParams) specification.Specification[model.Doctor] {
	pg := p.Paging.Normalize()
	b := specification.New[model.Doctor](doctorCriteria(p)).
		Include("User").
		Page(pg.PageIndex, pg.PageSize)
	applySort(b, p.Sort, doctorSorts, doctorSorts["rating"])
	return b.Build()
}

func NewDoctorCountSpec(p DoctorParams) specification.Specification[model.Doctor] {
	return specification.New[model.Doctor](doctorCriteria(p)).Build()
}
