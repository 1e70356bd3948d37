package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrConcurrencyConflict is returned by Complete when a staged update or
	// delete no longer matches its row.
	ErrConcurrencyConflict = errors.New("concurrency conflict: row changed or removed")
	ErrAlreadyBegun        = errors.New("unit of work: transaction already begun")
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opInsert:
		return "insert"
	case opUpdate:
		return "update"
	default:
		return "delete"
	}
}

type mutation struct {
	kind   opKind
	entity any
}

type repoKey struct {
	entity reflect.Type
	key    reflect.Type
}

// CommitObserver is notified after every Complete call.
type CommitObserver func(affected int64, elapsed time.Duration, err error)

type Option func(*UnitOfWork)

func WithLogger(log *logrus.Entry) Option {
	return func(u *UnitOfWork) {
		if log != nil {
			u.log = log
		}
	}
}

func WithCommitObserver(fn CommitObserver) Option {
	return func(u *UnitOfWork) { u.observer = fn }
}

// UnitOfWork scopes one logical operation: it caches one repository per
// entity/key pair, records staged mutations and flushes them atomically.
// A UnitOfWork must not be shared between unrelated operations.
type UnitOfWork struct {
	mu       sync.Mutex
	db       *gorm.DB
	tx       *gorm.DB
	repos    map[repoKey]any
	pending  []mutation
	log      *logrus.Entry
	observer CommitObserver
	tracer   trace.Tracer
}

func NewUnitOfWork(db *gorm.DB, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		db:     db,
		repos:  make(map[repoKey]any),
		log:    logrus.NewEntry(logrus.StandardLogger()),
		tracer: otel.Tracer("marketplace/repository"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// For returns the unit of work's repository for T keyed by K, creating it on first use.
func For[T any, K comparable](u *UnitOfWork) *Repository[T, K] {
	k := repoKey{
		entity: reflect.TypeOf((*T)(nil)).Elem(),
		key:    reflect.TypeOf((*K)(nil)).Elem(),
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if r, ok := u.repos[k]; ok {
		return r.(*Repository[T, K])
	}
	r := newRepository[T, K](u)
	u.repos[k] = r
	return r
}

func (u *UnitOfWork) session() *gorm.DB {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) stage(kind opKind, entity any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, mutation{kind: kind, entity: entity})
}

// Pending reports how many mutations are staged.
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}

// Begin opens the transaction now instead of at Complete, so tracked reads
// see and lock the same snapshot the flush writes to.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return ErrAlreadyBegun
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

// Rollback drops staged mutations and rolls back an open transaction. It is
// safe to call after Complete.
func (u *UnitOfWork) Rollback() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	if u.tx != nil {
		if err := u.tx.Rollback().Error; err != nil {
			u.log.WithError(err).Warn("unit of work rollback failed")
		}
		u.tx = nil
	}
}

// Complete applies every staged mutation in order inside one transaction and
// commits. On failure nothing is applied and the store error is returned.
// Staged mutations are cleared either way.
func (u *UnitOfWork) Complete(ctx context.Context) (int64, error) {
	ctx, span := u.tracer.Start(ctx, "uow.complete")
	defer span.End()

	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	staged := len(u.pending)
	affected, err := u.flush(ctx)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.Int("uow.staged", staged),
		attribute.Int64("uow.affected", affected),
	)
	fields := logrus.Fields{
		"component":   "unit_of_work",
		"staged":      staged,
		"affected":    affected,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		u.log.WithFields(fields).WithError(err).Warn("commit failed")
	} else {
		u.log.WithFields(fields).Debug("commit")
	}
	if u.observer != nil {
		u.observer(affected, elapsed, err)
	}
	return affected, err
}

func (u *UnitOfWork) flush(ctx context.Context) (int64, error) {
	pending := u.pending
	u.pending = nil

	tx := u.tx
	u.tx = nil
	if tx == nil {
		if len(pending) == 0 {
			return 0, nil
		}
		tx = u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return 0, fmt.Errorf("begin: %w", tx.Error)
		}
	}

	var total int64
	for _, m := range pending {
		n, err := apply(tx.WithContext(ctx), m)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		total += n
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return total, nil
}

func apply(tx *gorm.DB, m mutation) (int64, error) {
	var res *gorm.DB
	switch m.kind {
	case opInsert:
		res = tx.Create(m.entity)
	case opUpdate:
		res = tx.Model(m.entity).Select("*").Omit(clause.Associations).Updates(m.entity)
	case opDelete:
		res = tx.Delete(m.entity)
	}
	if res.Error != nil {
		return 0, res.Error
	}
	if m.kind != opInsert && res.RowsAffected == 0 {
		return 0, fmt.Errorf("%s %T: %w", m.kind, m.entity, ErrConcurrencyConflict)
	}
	return res.RowsAffected, nil
}

// Factory creates one UnitOfWork per logical operation with shared options.
type Factory struct {
	db   *gorm.DB
	opts []Option
}

func NewFactory(db *gorm.DB, opts ...Option) *Factory {
	return &Factory{db: db, opts: opts}
}

func (f *Factory) New() *UnitOfWork {
	return NewUnitOfWork(f.db, f.opts...)
}

// Ping checks connectivity of the underlying pool.
func (f *Factory) Ping(ctx context.Context) error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
