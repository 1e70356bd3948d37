// Package specification describes queries declaratively: a criteria predicate,
// eager-load paths, one ordering key and an optional paging window. A
// Specification is an immutable value; use Builder to construct one.
package specification

import "math"

// Specification is a query descriptor for entity type T.
type Specification[T any] struct {
	criteria  Criterion
	includes  []string
	orderBy   string
	desc      bool
	skip      int
	take      int
	paged     bool
	forUpdate bool
}

// Criteria returns the filter predicate, or nil when the specification matches every row.
func (s Specification[T]) Criteria() Criterion { return s.criteria }

// Includes returns a copy of the eager-load paths in insertion order.
func (s Specification[T]) Includes() []string {
	out := make([]string, len(s.includes))
	copy(out, s.includes)
	return out
}

// Ordering returns the active ordering key, if any.
func (s Specification[T]) Ordering() (column string, desc bool, ok bool) {
	return s.orderBy, s.desc, s.orderBy != ""
}

// Window returns the paging window, if any.
func (s Specification[T]) Window() (skip, take int, ok bool) {
	return s.skip, s.take, s.paged
}

// Locking reports whether matched rows are read with a row lock.
func (s Specification[T]) Locking() bool { return s.forUpdate }

// CountOnly returns a specification with the same criteria and nothing else.
// It is the count-mode counterpart used for pagination totals.
func (s Specification[T]) CountOnly() Specification[T] {
	return Specification[T]{criteria: s.criteria}
}

// Builder accumulates specification parts. Builders are not safe for concurrent use.
type Builder[T any] struct {
	spec Specification[T]
}

// New starts a specification with the given criteria. A nil criteria matches all rows.
func New[T any](criteria Criterion) *Builder[T] {
	return &Builder[T]{spec: Specification[T]{criteria: criteria}}
}

// Include appends eager-load paths. Paths use dotted segments ("Replies.User")
// and are applied in the order they are added.
func (b *Builder[T]) Include(paths ...string) *Builder[T] {
	b.spec.includes = append(b.spec.includes, paths...)
	return b
}

// OrderBy sorts ascending by column, replacing any earlier ordering.
func (b *Builder[T]) OrderBy(column string) *Builder[T] {
	b.spec.orderBy, b.spec.desc = column, false
	return b
}

// OrderByDescending sorts descending by column, replacing any earlier ordering.
func (b *Builder[T]) OrderByDescending(column string) *Builder[T] {
	b.spec.orderBy, b.spec.desc = column, true
	return b
}

// Window skips skip rows and returns at most take rows.
func (b *Builder[T]) Window(skip, take int) *Builder[T] {
	if skip < 0 {
		skip = 0
	}
	if take < 0 {
		take = 0
	}
	b.spec.skip, b.spec.take, b.spec.paged = skip, take, true
	return b
}

// Page sets the window from a 1-based page index and a page size. A page
// whose offset does not fit in an int lies past every row, so its skip is
// pinned to math.MaxInt and it matches nothing.
func (b *Builder[T]) Page(index, size int) *Builder[T] {
	if index < 1 {
		index = 1
	}
	if size > 0 && index-1 > math.MaxInt/size {
		return b.Window(math.MaxInt, size)
	}
	return b.Window((index-1)*size, size)
}

// ForUpdate requests row locks on the matched rows (SELECT ... FOR UPDATE) where
// the dialect supports it.
func (b *Builder[T]) ForUpdate() *Builder[T] {
	b.spec.forUpdate = true
	return b
}

// Build returns the finished specification. The builder may keep being used;
// later changes do not affect values already built.
func (b *Builder[T]) Build() Specification[T] {
	s := b.spec
	s.includes = make([]string, len(b.spec.includes))
	copy(s.includes, b.spec.includes)
	return s
}
