// Package gormstore implements the store contract on gorm/postgres.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go-pos/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// DB is the transaction root shared by every table.
type DB struct {
	db *gorm.DB
}

func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Gorm exposes the underlying handle for queries outside the generic contract.
func (d *DB) Gorm() *gorm.DB {
	return d.db
}

func (d *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction bound to ctx, or db itself, scoped to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

type Option func(*options)

type options struct {
	preload []string
}

// WithPreload eagerly loads the named associations on every read.
func WithPreload(assoc ...string) Option {
	return func(o *options) { o.preload = append(o.preload, assoc...) }
}

type table[T any] struct {
	db   *gorm.DB
	opts options
}

func NewTable[T any](d *DB, opts ...Option) store.Table[T] {
	t := &table[T]{db: d.db}
	for _, o := range opts {
		o(&t.opts)
	}
	return t
}

func (t *table[T]) read(ctx context.Context) *gorm.DB {
	tx := Conn(ctx, t.db).Model(new(T))
	for _, p := range t.opts.preload {
		tx = tx.Preload(p)
	}
	return tx
}

func (t *table[T]) FindMany(ctx context.Context, q store.Query) ([]T, error) {
	tx := Apply(t.read(ctx), q.Filter)
	for _, o := range q.OrderBy {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Take > 0 {
		tx = tx.Limit(q.Take)
	}

	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return nil, MapError(err)
	}
	return rows, nil
}

func (t *table[T]) Count(ctx context.Context, f store.Filter) (int64, error) {
	var n int64
	err := Apply(Conn(ctx, t.db).Model(new(T)), f).Count(&n).Error
	return n, MapError(err)
}

func (t *table[T]) First(ctx context.Context, f store.Filter) (*T, error) {
	var row T
	if err := Apply(t.read(ctx), f).Take(&row).Error; err != nil {
		return nil, MapError(err)
	}
	return &row, nil
}

func (t *table[T]) Create(ctx context.Context, row *T) error {
	return MapError(Conn(ctx, t.db).Create(row).Error)
}

func (t *table[T]) Save(ctx context.Context, row *T) error {
	return MapError(Conn(ctx, t.db).Save(row).Error)
}

func (t *table[T]) Delete(ctx context.Context, f store.Filter) (int64, error) {
	if len(f) == 0 {
		return 0, errors.New("gormstore: refusing to delete without a filter")
	}
	res := Apply(Conn(ctx, t.db), f).Delete(new(T))
	return res.RowsAffected, MapError(res.Error)
}

// Apply translates a store.Filter into WHERE clauses.
func Apply(tx *gorm.DB, f store.Filter) *gorm.DB {
	for _, c := range f {
		col := clause.Column{Name: c.Field}
		switch c.Op {
		case store.OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: c.Value})
		case store.OpNe:
			tx = tx.Where(clause.Neq{Column: col, Value: c.Value})
		case store.OpContains:
			tx = tx.Where(clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, fmt.Sprintf("%%%v%%", c.Value)}})
		case store.OpIn:
			tx = tx.Where(clause.IN{Column: col, Values: toSlice(c.Value)})
		case store.OpGte:
			tx = tx.Where(clause.Gte{Column: col, Value: c.Value})
		case store.OpLt:
			tx = tx.Where(clause.Lt{Column: col, Value: c.Value})
		case store.OpIsNull:
			tx = tx.Where(clause.Eq{Column: col, Value: nil})
		default:
			_ = tx.AddError(fmt.Errorf("gormstore: unsupported operator %q", c.Op))
		}
	}
	return tx
}

func toSlice(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// MapError converts gorm and postgres errors into store sentinels, keeping
// the constraint name for the logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", store.ErrReference, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", store.ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", store.ErrReference, pgErr.ConstraintName)
		}
	}
	return err
}
