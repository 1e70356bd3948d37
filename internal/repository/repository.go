// Package repository provides a generic, specification-driven repository and
// the unit of work that owns its transactional session.
package repository

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"marketplace/internal/specification"
)

// Repository gives access to entities of type T keyed by K. Obtain one with For;
// every repository from the same UnitOfWork shares its session and staged mutations.
//
// Lookups report absence as a nil entity with a nil error. Store errors are
// returned as they come from the driver.
type Repository[T any, K comparable] struct {
	uow   *UnitOfWork
	pk    string
	pkErr error
}

var schemaCache sync.Map

func newRepository[T any, K comparable](u *UnitOfWork) *Repository[T, K] {
	r := &Repository[T, K]{uow: u}
	s, err := schema.Parse(new(T), &schemaCache, u.db.NamingStrategy)
	switch {
	case err != nil:
		r.pkErr = fmt.Errorf("parse %T schema: %w", *new(T), err)
	case s.PrioritizedPrimaryField == nil:
		r.pkErr = fmt.Errorf("%T has no primary key", *new(T))
	default:
		r.pk = s.PrioritizedPrimaryField.DBName
	}
	return r
}

// tracked returns the unit of work's session: the open transaction after Begin.
func (r *Repository[T, K]) tracked(ctx context.Context) *gorm.DB {
	return r.uow.session().WithContext(ctx)
}

// detached returns a fresh session on the root pool, outside any transaction.
func (r *Repository[T, K]) detached(ctx context.Context) *gorm.DB {
	return r.uow.db.Session(&gorm.Session{NewDB: true, Context: ctx})
}

func (r *Repository[T, K]) GetAll(ctx context.Context) ([]T, error) {
	return r.all(r.tracked(ctx))
}

// GetAllNoTracking reads every row as detached snapshots.
func (r *Repository[T, K]) GetAllNoTracking(ctx context.Context) ([]T, error) {
	return r.all(r.detached(ctx))
}

func (r *Repository[T, K]) all(db *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	if err := db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	return r.byID(r.tracked(ctx), id)
}

func (r *Repository[T, K]) GetByIDNoTracking(ctx context.Context, id K) (*T, error) {
	return r.byID(r.detached(ctx), id)
}

func (r *Repository[T, K]) byID(db *gorm.DB, id K) (*T, error) {
	if r.pkErr != nil {
		return nil, r.pkErr
	}
	var out []T
	err := db.Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: r.pk}, Value: id}).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Find runs an ad-hoc filter without building a specification.
func (r *Repository[T, K]) Find(ctx context.Context, criteria specification.Criterion) ([]T, error) {
	q := r.tracked(ctx).Model(new(T))
	if criteria != nil {
		q = criteria(q)
	}
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllWithSpecification materializes the filtered, ordered, paged and
// eager-loaded result. It never returns a nil slice on success.
func (r *Repository[T, K]) GetAllWithSpecification(ctx context.Context, spec specification.Specification[T]) ([]T, error) {
	out := make([]T, 0)
	if err := specification.Evaluate(r.tracked(ctx), spec).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetWithSpecification returns the first match, or nil when nothing matches.
func (r *Repository[T, K]) GetWithSpecification(ctx context.Context, spec specification.Specification[T]) (*T, error) {
	var out []T
	if err := specification.Evaluate(r.tracked(ctx), spec).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// GetCount counts the rows matched by the specification's criteria.
func (r *Repository[T, K]) GetCount(ctx context.Context, spec specification.Specification[T]) (int64, error) {
	var n int64
	if err := specification.EvaluateCount(r.tracked(ctx), spec).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Add stages an insert. No I/O happens until UnitOfWork.Complete.
func (r *Repository[T, K]) Add(entity *T) {
	r.uow.stage(opInsert, entity)
}

func (r *Repository[T, K]) AddRange(entities ...*T) {
	for _, e := range entities {
		r.uow.stage(opInsert, e)
	}
}

// Update stages a full-row update of entity, matched by primary key.
func (r *Repository[T, K]) Update(entity *T) {
	r.uow.stage(opUpdate, entity)
}

func (r *Repository[T, K]) Delete(entity *T) {
	r.uow.stage(opDelete, entity)
}

// DeleteRange loads every row matching criteria, stages each for removal and
// returns how many were staged.
func (r *Repository[T, K]) DeleteRange(ctx context.Context, criteria specification.Criterion) (int, error) {
	rows, err := r.Find(ctx, criteria)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		r.uow.stage(opDelete, &rows[i])
	}
	return len(rows), nil
}
