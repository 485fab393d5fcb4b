// Package store is the persistence contract the repositories are written
// against: filtered/paginated reads, single-row writes and transactions.
//
// Field names in filters and orderings are column names (snake_case).
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrReference = errors.New("record referenced by or referencing another record")
)

type Op string

const (
	OpEq       Op = "eq"
	OpNe       Op = "ne"
	OpContains Op = "contains"
	OpIn       Op = "in"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
	OpIsNull   Op = "isnull"
)

// Cond is a single predicate on one column.
type Cond struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Cond       { return Cond{Field: field, Op: OpEq, Value: value} }
func Ne(field string, value any) Cond       { return Cond{Field: field, Op: OpNe, Value: value} }
func Contains(field string, value any) Cond { return Cond{Field: field, Op: OpContains, Value: value} }
func In(field string, values any) Cond      { return Cond{Field: field, Op: OpIn, Value: values} }
func Gte(field string, value any) Cond      { return Cond{Field: field, Op: OpGte, Value: value} }
func Lt(field string, value any) Cond       { return Cond{Field: field, Op: OpLt, Value: value} }
func IsNull(field string) Cond              { return Cond{Field: field, Op: OpIsNull} }

// Filter is a conjunction of conditions.
type Filter []Cond

// And returns a new filter with conds appended; f is left untouched.
func (f Filter) And(conds ...Cond) Filter {
	out := make(Filter, 0, len(f)+len(conds))
	out = append(out, f...)
	return append(out, conds...)
}

type Order struct {
	Field string
	Desc  bool
}

// Query describes a read. Take <= 0 means no limit.
type Query struct {
	Filter  Filter
	OrderBy []Order
	Skip    int
	Take    int
}

// Table is the per-entity CRUD contract.
type Table[T any] interface {
	FindMany(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, f Filter) (int64, error)
	// First returns ErrNotFound when nothing matches.
	First(ctx context.Context, f Filter) (*T, error)
	Create(ctx context.Context, row *T) error
	Save(ctx context.Context, row *T) error
	Delete(ctx context.Context, f Filter) (int64, error)
}

// Transactor runs fn atomically. Tables called with the ctx handed to fn take
// part in the transaction; a non-nil error from fn rolls everything back.
// Nested calls join the outer transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
