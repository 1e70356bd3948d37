package specification

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Criterion narrows a query. It is an ordinary GORM scope, so criteria compose
// by function application and stay lazy until the query is executed.
type Criterion func(*gorm.DB) *gorm.DB

// All joins criteria with AND. Nil entries are skipped; with nothing left, All
// returns nil (match-all).
func All(cs ...Criterion) Criterion {
	kept := make([]Criterion, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range kept {
			db = c(db)
		}
		return db
	}
}

// AnyOf joins criteria with OR. Each operand keeps its own AND grouping.
func AnyOf(cs ...Criterion) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		var ors []clause.Expression
		for _, c := range cs {
			if c == nil {
				continue
			}
			if exprs := whereOf(db, c); len(exprs) > 0 {
				ors = append(ors, clause.And(exprs...))
			}
		}
		switch len(ors) {
		case 0:
			return db
		case 1:
			return db.Where(ors[0])
		}
		return db.Where(clause.Or(ors...))
	}
}

// Not negates a criterion.
func Not(c Criterion) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		exprs := whereOf(db, c)
		if len(exprs) == 0 {
			return db
		}
		return db.Where(clause.Not(clause.And(exprs...)))
	}
}

// whereOf applies c to an empty session and returns the WHERE expressions it added.
func whereOf(db *gorm.DB, c Criterion) []clause.Expression {
	sub := c(db.Session(&gorm.Session{NewDB: true}))
	cl, ok := sub.Statement.Clauses["WHERE"]
	if !ok {
		return nil
	}
	where, ok := cl.Expression.(clause.Where)
	if !ok {
		return nil
	}
	return where.Exprs
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

func Eq(col string, v any) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: column(col), Value: v})
	}
}

func NotEq(col string, v any) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Neq{Column: column(col), Value: v})
	}
}

func Gte(col string, v any) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Gte{Column: column(col), Value: v})
	}
}

func Lte(col string, v any) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Lte{Column: column(col), Value: v})
	}
}

// In matches rows whose column is one of values. An empty list matches nothing.
func In[V any](col string, values []V) Criterion {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.IN{Column: column(col), Values: vs})
	}
}

func IsNull(col string) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: column(col), Value: nil})
	}
}

func IsNotNull(col string) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Neq{Column: column(col), Value: nil})
	}
}

// EqualFold compares a text column case-insensitively.
func EqualFold(col, v string) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Expr{
			SQL:  "LOWER(?) = ?",
			Vars: []any{column(col), strings.ToLower(v)},
		})
	}
}

// ContainsFold matches a case-insensitive substring. LIKE wildcards in v are
// matched literally.
func ContainsFold(col, v string) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(containsExpr(col, v))
	}
}

// AnyContainsFold matches when any of the columns contains v.
func AnyContainsFold(v string, cols ...string) Criterion {
	return func(db *gorm.DB) *gorm.DB {
		exprs := make([]clause.Expression, 0, len(cols))
		for _, c := range cols {
			exprs = append(exprs, containsExpr(c, v))
		}
		switch len(exprs) {
		case 0:
			return db
		case 1:
			return db.Where(exprs[0])
		}
		return db.Where(clause.Or(exprs...))
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsExpr(col, v string) clause.Expr {
	return clause.Expr{
		SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
		Vars: []any{column(col), "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"},
	}
}
