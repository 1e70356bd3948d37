package specification

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Evaluate turns a specification into an unexecuted query over T. The steps
// run in a fixed order: criteria, includes (as listed), ordering, skip/take,
// then row locking.
func Evaluate[T any](db *gorm.DB, spec Specification[T]) *gorm.DB {
	q := db.Model(new(T))
	if spec.criteria != nil {
		q = spec.criteria(q)
	}
	for _, path := range spec.includes {
		q = q.Preload(path)
	}
	if spec.orderBy != "" {
		q = q.Order(clause.OrderByColumn{Column: column(spec.orderBy), Desc: spec.desc})
	}
	if spec.paged {
		q = q.Offset(spec.skip).Limit(spec.take)
	}
	if spec.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// EvaluateCount builds the count-mode query: criteria only.
func EvaluateCount[T any](db *gorm.DB, spec Specification[T]) *gorm.DB {
	q := db.Model(new(T))
	if spec.criteria != nil {
		q = spec.criteria(q)
	}
	return q
}
