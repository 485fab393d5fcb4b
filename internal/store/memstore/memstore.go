// Package memstore is an in-process implementation of the store contract. It
// backs the memory profile of the API and the repository tests.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go-pos/internal/store"

	"gorm.io/gorm/schema"
)

type txKey struct{}

type snapshotter interface {
	snapshot() (restore func())
}

// DB owns every table and serialises transactions.
type DB struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	tables []snapshotter
}

func New() *DB {
	return &DB{}
}

func (d *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	d.txMu.Lock()
	defer d.txMu.Unlock()

	d.mu.Lock()
	restores := make([]func(), 0, len(d.tables))
	for _, t := range d.tables {
		restores = append(restores, t.snapshot())
	}
	d.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		d.mu.Lock()
		for _, r := range restores {
			r()
		}
		d.mu.Unlock()
		return err
	}
	return nil
}

type Option func(*config)

type config struct {
	key    string
	serial bool
	unique [][]string
}

// WithKey names the primary key column. Defaults to "id".
func WithKey(col string) Option {
	return func(c *config) { c.key = col }
}

// WithAutoIncrement fills a zero integer key on Create.
func WithAutoIncrement() Option {
	return func(c *config) { c.serial = true }
}

// WithUnique declares a unique constraint over cols.
func WithUnique(cols ...string) Option {
	return func(c *config) { c.unique = append(c.unique, cols) }
}

// Table holds rows of T by value.
type Table[T any] struct {
	db     *DB
	cfg    config
	fields map[string][]int
	rows   []T
	seq    int64
}

var _ store.Table[struct{}] = (*Table[struct{}])(nil)

func NewTable[T any](db *DB, opts ...Option) *Table[T] {
	cfg := config{key: "id"}
	for _, o := range opts {
		o(&cfg)
	}
	t := &Table[T]{db: db, cfg: cfg, fields: columns(reflect.TypeOf((*T)(nil)).Elem())}
	if _, ok := t.fields[cfg.key]; !ok {
		panic(fmt.Sprintf("memstore: %T has no key column %q", *new(T), cfg.key))
	}
	for _, cols := range cfg.unique {
		for _, c := range cols {
			if _, ok := t.fields[c]; !ok {
				panic(fmt.Sprintf("memstore: %T has no column %q", *new(T), c))
			}
		}
	}

	db.mu.Lock()
	db.tables = append(db.tables, t)
	db.mu.Unlock()
	return t
}

func (t *Table[T]) snapshot() func() {
	rows := make([]T, len(t.rows))
	copy(rows, t.rows)
	seq := t.seq
	return func() {
		t.rows = rows
		t.seq = seq
	}
}

func (t *Table[T]) FindMany(_ context.Context, q store.Query) ([]T, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()

	out, err := t.filter(q.Filter)
	if err != nil {
		return nil, err
	}
	if err := t.sort(out, q.OrderBy); err != nil {
		return nil, err
	}

	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return []T{}, nil
		}
		out = out[q.Skip:]
	}
	if q.Take > 0 && q.Take < len(out) {
		out = out[:q.Take]
	}
	return out, nil
}

func (t *Table[T]) Count(_ context.Context, f store.Filter) (int64, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()

	out, err := t.filter(f)
	return int64(len(out)), err
}

func (t *Table[T]) First(_ context.Context, f store.Filter) (*T, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()

	out, err := t.filter(f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, store.ErrNotFound
	}
	row := out[0]
	return &row, nil
}

func (t *Table[T]) Create(_ context.Context, row *T) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	v := reflect.ValueOf(row).Elem()
	key := v.FieldByIndex(t.fields[t.cfg.key])
	if t.cfg.serial && key.IsZero() {
		t.seq++
		key.SetInt(t.seq)
	} else if t.cfg.serial && key.Int() > t.seq {
		t.seq = key.Int()
	}

	now := time.Now()
	for _, col := range []string{"created_at", "updated_at"} {
		if idx, ok := t.fields[col]; ok {
			if f := v.FieldByIndex(idx); f.Type() == timeType && f.IsZero() {
				f.Set(reflect.ValueOf(now))
			}
		}
	}

	if err := t.checkUnique(v, -1); err != nil {
		return err
	}
	t.rows = append(t.rows, *row)
	return nil
}

// Save replaces the row with the same key, inserting it when absent.
func (t *Table[T]) Save(ctx context.Context, row *T) error {
	t.db.mu.Lock()

	v := reflect.ValueOf(row).Elem()
	key := v.FieldByIndex(t.fields[t.cfg.key])
	pos := -1
	for i := range t.rows {
		if equal(reflect.ValueOf(&t.rows[i]).Elem().FieldByIndex(t.fields[t.cfg.key]), key) {
			pos = i
			break
		}
	}
	if pos < 0 {
		t.db.mu.Unlock()
		return t.Create(ctx, row)
	}
	defer t.db.mu.Unlock()

	if idx, ok := t.fields["updated_at"]; ok {
		if f := v.FieldByIndex(idx); f.Type() == timeType {
			f.Set(reflect.ValueOf(time.Now()))
		}
	}
	if err := t.checkUnique(v, pos); err != nil {
		return err
	}
	t.rows[pos] = *row
	return nil
}

func (t *Table[T]) Delete(_ context.Context, f store.Filter) (int64, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	kept := make([]T, 0, len(t.rows))
	var n int64
	for i := range t.rows {
		ok, err := t.match(reflect.ValueOf(&t.rows[i]).Elem(), f)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
			continue
		}
		kept = append(kept, t.rows[i])
	}
	t.rows = kept
	return n, nil
}

// Len reports the number of stored rows.
func (t *Table[T]) Len() int {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	return len(t.rows)
}

func (t *Table[T]) checkUnique(v reflect.Value, skip int) error {
	constraints := append([][]string{{t.cfg.key}}, t.cfg.unique...)
	for _, cols := range constraints {
		if hasNull(v, t.fields, cols) {
			continue
		}
		for i := range t.rows {
			if i == skip {
				continue
			}
			other := reflect.ValueOf(&t.rows[i]).Elem()
			same := true
			for _, c := range cols {
				if !equal(other.FieldByIndex(t.fields[c]), v.FieldByIndex(t.fields[c])) {
					same = false
					break
				}
			}
			if same {
				return fmt.Errorf("%w: %s", store.ErrDuplicate, strings.Join(cols, ","))
			}
		}
	}
	return nil
}

func (t *Table[T]) filter(f store.Filter) ([]T, error) {
	out := make([]T, 0)
	for i := range t.rows {
		ok, err := t.match(reflect.ValueOf(&t.rows[i]).Elem(), f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t.rows[i])
		}
	}
	return out, nil
}

func (t *Table[T]) match(v reflect.Value, f store.Filter) (bool, error) {
	for _, c := range f {
		idx, ok := t.fields[c.Field]
		if !ok {
			return false, fmt.Errorf("memstore: unknown column %q", c.Field)
		}
		ok, err := test(v.FieldByIndex(idx), c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (t *Table[T]) sort(rows []T, order []store.Order) error {
	for _, o := range order {
		if _, ok := t.fields[o.Field]; !ok {
			return fmt.Errorf("memstore: unknown column %q", o.Field)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := reflect.ValueOf(&rows[i]).Elem(), reflect.ValueOf(&rows[j]).Elem()
		for _, o := range order {
			idx := t.fields[o.Field]
			c := compare(a.FieldByIndex(idx), b.FieldByIndex(idx))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return nil
}

// NULLs never collide, as in postgres.
func hasNull(v reflect.Value, fields map[string][]int, cols []string) bool {
	for _, c := range cols {
		if f := v.FieldByIndex(fields[c]); f.Kind() == reflect.Pointer && f.IsNil() {
			return true
		}
	}
	return false
}

// columns maps column names to field indexes, following gorm's naming so
// the same filters work on both stores.
func columns(t reflect.Type) map[string][]int {
	out := map[string][]int{}
	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			idx := append(append([]int{}, prefix...), i)
			tag := schema.ParseTagSetting(f.Tag.Get("gorm"), ";")
			if _, skip := tag["-"]; skip {
				continue
			}
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				walk(f.Type, idx)
				continue
			}
			name := tag["COLUMN"]
			if name == "" {
				name = schema.NamingStrategy{}.ColumnName("", f.Name)
			}
			out[name] = idx
		}
	}
	walk(t, nil)
	return out
}
