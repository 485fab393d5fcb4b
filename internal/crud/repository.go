package crud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/events"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/contextutil"
	"go-pos/internal/shared/result"
	"go-pos/internal/shared/validation"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
	"go-pos/internal/view"

	"go.uber.org/zap"
)

const (
	DefaultTake = 10
	MaxTake     = 100

	deletedColumn = "is_deleted"
)

// EventRecorder records a change event inside the running transaction.
type EventRecorder interface {
	RecordEntityChanged(ctx context.Context, ev events.EntityChangedEvent) error
}

// Deps are the collaborators shared by every repository.
type Deps struct {
	Tx        store.Transactor
	Validator *validation.Validator
	Views     view.Invalidator
	Events    EventRecorder
	Now       func() time.Time
}

// ListParams drive List. Filter is keyed by API field name; Where carries
// typed conditions from internal callers.
type ListParams struct {
	Skip           int
	Take           int
	OrderBy        string
	Desc           bool
	Filter         map[string]string
	Where          store.Filter
	IncludeDeleted bool
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type (
	createStamper interface{ StampCreatedBy(actorID string) }
	updateStamper interface{ StampUpdatedBy(actorID string) }
	// tenantDefaulter fills empty tenant keys of a payload from the actor.
	tenantDefaulter interface{ DefaultTenant(scope authz.Scope) }
)

type Repository[T, A, E any] struct {
	spec   Spec[T, A, E]
	table  store.Table[T]
	tx     store.Transactor
	val    *validation.Validator
	views  view.Invalidator
	events EventRecorder
	now    func() time.Time
	logger *zap.Logger
}

func New[T, A, E any](spec Spec[T, A, E], table store.Table[T], deps Deps) *Repository[T, A, E] {
	if spec.KeyColumn == "" {
		spec.KeyColumn = "id"
	}
	if spec.KeyField == "" {
		spec.KeyField = "id"
	}
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	if deps.Views == nil {
		deps.Views = view.Noop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Repository[T, A, E]{
		spec:   spec,
		table:  table,
		tx:     deps.Tx,
		val:    deps.Validator,
		views:  deps.Views,
		events: deps.Events,
		now:    deps.Now,
		logger: zap.L().Named(spec.Resource + ".repository"),
	}
}

// Table exposes the underlying table to feature services composing larger
// transactions.
func (r *Repository[T, A, E]) Table() store.Table[T] {
	return r.table
}

func (r *Repository[T, A, E]) List(ctx context.Context, actor authz.Actor, p ListParams) (Page[T], error) {
	if err := authz.Require(actor, r.spec.code(authz.ActionView)); err != nil {
		return Page[T]{}, err
	}

	filter, err := r.listFilter(actor, p)
	if err != nil {
		return Page[T]{}, err
	}
	order, err := r.order(p)
	if err != nil {
		return Page[T]{}, err
	}

	take := p.Take
	if take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}
	skip := max(p.Skip, 0)

	total, err := r.table.Count(ctx, filter)
	if err != nil {
		return Page[T]{}, r.readError(err)
	}
	items, err := r.table.FindMany(ctx, store.Query{Filter: filter, OrderBy: order, Skip: skip, Take: take})
	if err != nil {
		return Page[T]{}, r.readError(err)
	}

	return Page[T]{Items: items, Total: total}, nil
}

// Get returns the row by key, soft-deleted rows included.
func (r *Repository[T, A, E]) Get(ctx context.Context, actor authz.Actor, rawKey string) (*T, error) {
	if err := authz.Require(actor, r.spec.code(authz.ActionView)); err != nil {
		return nil, err
	}

	key, err := r.spec.parseKey(rawKey)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	row, err := r.table.First(ctx, r.keyFilter(actor, key))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, r.readError(err)
	}
	return row, nil
}

func (r *Repository[T, A, E]) Create(ctx context.Context, actor authz.Actor, in A) (result.Result, error) {
	if err := authz.Require(actor, r.spec.code(authz.ActionCreate)); err != nil {
		return result.Result{}, err
	}

	if d, ok := any(&in).(tenantDefaulter); ok {
		d.DefaultTenant(actor.Scope())
	}
	if s, ok := any(&in).(createStamper); ok {
		s.StampCreatedBy(actor.ID)
	}
	if errs := r.val.Struct(in); errs != nil {
		return result.Invalid(errs, in), nil
	}

	row := r.spec.Build(in)
	if !r.owns(actor, row) {
		return result.Result{}, apperror.ErrForbidden
	}

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		if h := r.spec.Hooks.BeforeCreate; h != nil {
			if err := h(ctx, actor, in, &row); err != nil {
				return err
			}
		}
		if err := r.table.Create(ctx, &row); err != nil {
			return err
		}
		if h := r.spec.Hooks.AfterCreate; h != nil {
			if err := h(ctx, actor, in, &row); err != nil {
				return err
			}
		}
		return r.record(ctx, actor, events.ActionCreated, row)
	})
	if err != nil {
		return r.failure(err, authz.ActionCreate, in), nil
	}

	r.invalidate(ctx)

	res := result.OK(r.spec.label() + " created successfully")
	res.Values = row
	return res, nil
}

func (r *Repository[T, A, E]) Update(ctx context.Context, actor authz.Actor, in E) (result.Result, error) {
	if err := authz.Require(actor, r.spec.code(authz.ActionUpdate)); err != nil {
		return result.Result{}, err
	}

	if s, ok := any(&in).(updateStamper); ok {
		s.StampUpdatedBy(actor.ID)
	}
	if errs := r.val.Struct(in); errs != nil {
		return result.Invalid(errs, in), nil
	}

	var saved T
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		existing, err := r.live(ctx, actor, r.spec.EditKey(in))
		if err != nil {
			return err
		}

		row := *existing
		r.spec.Apply(&row, in)
		if !r.owns(actor, row) {
			return apperror.ErrForbidden
		}
		if h := r.spec.Hooks.BeforeUpdate; h != nil {
			if err := h(ctx, actor, in, *existing, &row); err != nil {
				return err
			}
		}
		if err := r.table.Save(ctx, &row); err != nil {
			return err
		}
		saved = row
		return r.record(ctx, actor, events.ActionUpdated, row)
	})
	if errors.Is(err, apperror.ErrForbidden) {
		return result.Result{}, err
	}
	if err != nil {
		return r.failure(err, authz.ActionUpdate, in), nil
	}

	r.invalidate(ctx)

	res := result.OK(r.spec.label() + " updated successfully")
	res.Values = saved
	return res, nil
}

func (r *Repository[T, A, E]) Delete(ctx context.Context, actor authz.Actor, rawKey string) (result.Result, error) {
	if err := authz.Require(actor, r.spec.code(authz.ActionDelete)); err != nil {
		return result.Result{}, err
	}

	values := map[string]string{r.spec.KeyField: rawKey}
	key, err := r.spec.parseKey(rawKey)
	if err != nil {
		return result.NotFound(r.spec.KeyField, values), nil
	}

	err = r.tx.Transaction(ctx, func(ctx context.Context) error {
		existing, err := r.live(ctx, actor, key)
		if err != nil {
			return err
		}
		if h := r.spec.Hooks.BeforeDelete; h != nil {
			if err := h(ctx, actor, *existing); err != nil {
				return err
			}
		}

		if r.spec.SoftDelete != nil {
			row := *existing
			r.spec.SoftDelete(&row, r.now())
			if err := r.table.Save(ctx, &row); err != nil {
				return err
			}
		} else {
			n, err := r.table.Delete(ctx, store.Filter{store.Eq(r.spec.KeyColumn, key)})
			if err != nil {
				return err
			}
			if n == 0 {
				return errMissing
			}
		}
		return r.record(ctx, actor, events.ActionDeleted, *existing)
	})
	if err != nil {
		return r.failure(err, authz.ActionDelete, values), nil
	}

	r.invalidate(ctx)
	return result.OK(r.spec.label() + " deleted successfully"), nil
}

// Mutate runs fn in a transaction, records a change event for the row fn
// returns and invalidates the repository's views once committed. Feature
// services build operations beyond plain CRUD on it; pass the error to
// Failure to turn it into a Result.
func (r *Repository[T, A, E]) Mutate(ctx context.Context, actor authz.Actor, action string, fn func(ctx context.Context) (T, error)) (T, error) {
	var saved T
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		row, err := fn(ctx)
		if err != nil {
			return err
		}
		saved = row
		return r.record(ctx, actor, action, row)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	r.invalidate(ctx)
	return saved, nil
}

// Live loads the row with key inside the actor's scope, skipping
// soft-deleted rows.
func (r *Repository[T, A, E]) Live(ctx context.Context, actor authz.Actor, key any) (*T, error) {
	return r.live(ctx, actor, key)
}

// Failure converts an error from Mutate into a Result.
func (r *Repository[T, A, E]) Failure(err error, action string, values any) result.Result {
	return r.failure(err, action, values)
}

// live loads the row a mutation targets: inside the actor's scope and not
// soft-deleted.
func (r *Repository[T, A, E]) live(ctx context.Context, actor authz.Actor, key any) (*T, error) {
	f := r.keyFilter(actor, key)
	if r.spec.SoftDelete != nil {
		f = f.And(store.Eq(deletedColumn, false))
	}

	row, err := r.table.First(ctx, f)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errMissing
	}
	return row, err
}

func (r *Repository[T, A, E]) keyFilter(actor authz.Actor, key any) store.Filter {
	return tenant.Filter(actor.Scope(), r.spec.Tenant).And(store.Eq(r.spec.KeyColumn, key))
}

func (r *Repository[T, A, E]) owns(actor authz.Actor, row T) bool {
	if r.spec.TenantOf == nil {
		return true
	}
	business, branch := r.spec.TenantOf(row)
	return tenant.Owns(actor.Scope(), r.spec.Tenant, business, branch)
}

func (r *Repository[T, A, E]) listFilter(actor authz.Actor, p ListParams) (store.Filter, error) {
	f := tenant.Filter(actor.Scope(), r.spec.Tenant)
	if r.spec.SoftDelete != nil && !p.IncludeDeleted {
		f = f.And(store.Eq(deletedColumn, false))
	}

	for name, raw := range p.Filter {
		field, ok := r.spec.Fields[name]
		if !ok || field.Op == "" {
			return nil, apperror.InvalidInput(fmt.Sprintf("cannot filter by %q", name))
		}
		var value any = raw
		if field.Parse != nil {
			v, err := field.Parse(raw)
			if err != nil {
				return nil, apperror.InvalidInput(fmt.Sprintf("invalid value for %q", name))
			}
			value = v
		}
		if field.Op == store.OpIn {
			value = splitList(raw)
		}
		f = f.And(store.Cond{Field: field.Column, Op: field.Op, Value: value})
	}

	return f.And(p.Where...), nil
}

// order sorts by the requested field, ascending key when none is given.
// The key breaks ties so pages never overlap.
func (r *Repository[T, A, E]) order(p ListParams) ([]store.Order, error) {
	byKey := store.Order{Field: r.spec.KeyColumn}
	if p.OrderBy == "" {
		return []store.Order{byKey}, nil
	}
	field, ok := r.spec.Fields[p.OrderBy]
	if !ok || !field.Sortable {
		return nil, apperror.InvalidInput(fmt.Sprintf("cannot sort by %q", p.OrderBy))
	}
	if field.Column == r.spec.KeyColumn {
		return []store.Order{{Field: field.Column, Desc: p.Desc}}, nil
	}
	return []store.Order{{Field: field.Column, Desc: p.Desc}, byKey}, nil
}

func (r *Repository[T, A, E]) record(ctx context.Context, actor authz.Actor, action string, row T) error {
	if r.events == nil {
		return nil
	}

	ev := events.EntityChangedEvent{
		EventType:  events.EventType(r.spec.Resource, action),
		Resource:   r.spec.Resource,
		Key:        r.spec.keyString(row),
		ActorID:    actor.ID,
		RequestID:  contextutil.RequestID(ctx),
		OccurredAt: r.now().UTC(),
	}
	if r.spec.TenantOf != nil {
		ev.BusinessID, ev.BranchID = r.spec.TenantOf(row)
	}
	return r.events.RecordEntityChanged(ctx, ev)
}

func (r *Repository[T, A, E]) invalidate(ctx context.Context) {
	r.views.Invalidate(ctx, r.spec.Resource)
	for _, scope := range r.spec.Views {
		r.views.Invalidate(ctx, scope)
	}
}

func (r *Repository[T, A, E]) readError(err error) error {
	r.logger.Error("read failed", zap.Error(err))
	return apperror.Internal(err)
}
