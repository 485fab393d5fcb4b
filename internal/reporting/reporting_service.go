// Package reporting aggregates sales, expenses and stock into dashboard
// figures. Every read is confined to one business and, for branch managers,
// one branch.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/expense"
	"go-pos/internal/order"
	"go-pos/internal/product"
	"go-pos/internal/salesman"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/stock"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
	"go-pos/internal/view"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	Resource = "report"

	DefaultLowStockThreshold = 5
)

// Sources are the tables reports read from.
type Sources struct {
	Orders   store.Table[order.Order]
	Expenses store.Table[expense.Expense]
	Branches store.Table[branch.Branch]
	Products store.Table[product.Product]
	Salesmen store.Table[salesman.Salesman]
	Stocks   store.Table[stock.Stock]
}

type Options struct {
	Now      func() time.Time
	Location *time.Location
	// LowStockThreshold is the quantity at or below which a stock row counts
	// as low.
	LowStockThreshold int
	Cache             view.Cache
}

type Service struct {
	src       Sources
	now       func() time.Time
	loc       *time.Location
	threshold int
	cache     view.Cache
	group     singleflight.Group
	logger    *zap.Logger
}

func NewService(src Sources, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = DefaultLowStockThreshold
	}
	if opts.Cache == nil {
		opts.Cache = view.NoCache()
	}
	return &Service{
		src:       src,
		now:       opts.Now,
		loc:       opts.Location,
		threshold: opts.LowStockThreshold,
		cache:     opts.Cache,
		logger:    zap.L().Named("reporting.service"),
	}
}

// DashboardStats sums the last seven days and compares them with the seven
// days before.
func (s *Service) DashboardStats(ctx context.Context, actor authz.Actor, businessID string) (Stats, error) {
	scope, err := s.authorize(actor, businessID)
	if err != nil {
		return Stats{}, err
	}

	now := s.now().In(s.loc)
	key := view.Key("dashboard", "stats", scope.BusinessID, scope.BranchID, now.Format(time.DateOnly))
	return load(ctx, s, key, func(ctx context.Context) (Stats, error) {
		start, end := lastSevenDays(now)
		prevStart := start.AddDate(0, 0, -7)

		var (
			cur, prev       []order.Order
			curExp, prevExp []expense.Expense
			out             Stats
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { cur, err = s.orders(gctx, scope, start, end); return })
		g.Go(func() (err error) { prev, err = s.orders(gctx, scope, prevStart, start); return })
		g.Go(func() (err error) { curExp, err = s.expenses(gctx, scope, start, end); return })
		g.Go(func() (err error) { prevExp, err = s.expenses(gctx, scope, prevStart, start); return })
		g.Go(func() (err error) {
			out.Branches, err = s.src.Branches.Count(gctx, tenant.Filter(scope, branch.Columns))
			return
		})
		g.Go(func() (err error) {
			out.Products, err = s.src.Products.Count(gctx, tenant.Filter(scope, tenant.Business))
			return
		})
		g.Go(func() (err error) {
			out.Salesmen, err = s.src.Salesmen.Count(gctx, tenant.Filter(scope, tenant.Branch))
			return
		})
		if err := g.Wait(); err != nil {
			return Stats{}, err
		}

		out.Sales = sales(cur)
		out.Orders = int64(len(cur))
		out.Expenses = spent(curExp)
		out.Notes = Notes{
			Sales:    PctChange(out.Sales, sales(prev)),
			Orders:   PctChange(decimal.NewFromInt(out.Orders), decimal.NewFromInt(int64(len(prev)))),
			Expenses: PctChange(out.Expenses, spent(prevExp)),
		}
		return out, nil
	})
}

// BranchPerformance reports each branch's last seven days.
func (s *Service) BranchPerformance(ctx context.Context, actor authz.Actor, businessID string) ([]BranchMetrics, error) {
	scope, err := s.authorize(actor, businessID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	key := view.Key("dashboard", "branches", scope.BusinessID, scope.BranchID, now.Format(time.DateOnly))
	return load(ctx, s, key, func(ctx context.Context) ([]BranchMetrics, error) {
		start, end := lastSevenDays(now)

		var (
			branches []branch.Branch
			orders   []order.Order
			expenses []expense.Expense
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { branches, err = s.branches(gctx, scope); return })
		g.Go(func() (err error) { orders, err = s.orders(gctx, scope, start, end); return })
		g.Go(func() (err error) { expenses, err = s.expenses(gctx, scope, start, end); return })
		if err := g.Wait(); err != nil {
			return nil, err
		}

		out := make([]BranchMetrics, len(branches))
		pos := make(map[string]int, len(branches))
		for i, b := range branches {
			out[i] = BranchMetrics{BranchID: b.ID, Name: b.Name}
			pos[b.ID] = i
		}
		for _, o := range orders {
			if i, ok := pos[o.BranchID]; ok {
				out[i].Sales = out[i].Sales.Add(o.Total)
				out[i].Orders++
			}
		}
		for _, e := range expenses {
			if i, ok := pos[e.BranchID]; ok {
				out[i].Expenses = out[i].Expenses.Add(e.Amount)
			}
		}
		for i := range out {
			out[i].Profit = out[i].Sales.Sub(out[i].Expenses)
		}
		return out, nil
	})
}

// SalesOverview buckets sales over rng: one point per weekday for "week",
// per day for "month", per month for "year".
func (s *Service) SalesOverview(ctx context.Context, actor authz.Actor, businessID, rng string) ([]Point, error) {
	scope, err := s.authorize(actor, businessID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	ser, ok := newSeries(rng, now)
	if !ok {
		return nil, apperror.InvalidInput(fmt.Sprintf("range must be one of %s, %s, %s", RangeWeek, RangeMonth, RangeYear))
	}

	key := view.Key("dashboard", "sales", rng, scope.BusinessID, scope.BranchID, now.Format(time.DateOnly))
	return load(ctx, s, key, func(ctx context.Context) ([]Point, error) {
		orders, err := s.orders(ctx, scope, ser.start, ser.end)
		if err != nil {
			return nil, err
		}
		return accumulate(ser, orders), nil
	})
}

// StockOverview totals units per branch and counts rows at or below the low
// stock threshold.
func (s *Service) StockOverview(ctx context.Context, actor authz.Actor, businessID string) ([]StockLevel, error) {
	scope, err := s.authorize(actor, businessID)
	if err != nil {
		return nil, err
	}

	key := view.Key("stock", "overview", scope.BusinessID, scope.BranchID)
	return load(ctx, s, key, func(ctx context.Context) ([]StockLevel, error) {
		var (
			branches []branch.Branch
			stocks   []stock.Stock
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { branches, err = s.branches(gctx, scope); return })
		g.Go(func() (err error) {
			stocks, err = s.src.Stocks.FindMany(gctx, store.Query{Filter: tenant.Filter(scope, tenant.Branch)})
			return
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		out := make([]StockLevel, len(branches))
		pos := make(map[string]int, len(branches))
		for i, b := range branches {
			out[i] = StockLevel{BranchID: b.ID, Name: b.Name}
			pos[b.ID] = i
		}
		for _, st := range stocks {
			i, ok := pos[st.BranchID]
			if !ok {
				continue
			}
			out[i].Units += int64(st.Quantity)
			if st.Quantity <= s.threshold {
				out[i].LowStock++
			}
		}
		return out, nil
	})
}

// authorize resolves the scope a report runs in. Actors bound to a business
// may only report on it; branch managers stay inside their branch.
func (s *Service) authorize(actor authz.Actor, businessID string) (authz.Scope, error) {
	if err := authz.Require(actor, authz.Code(Resource, authz.ActionView)); err != nil {
		return authz.Scope{}, err
	}

	own := actor.Scope()
	if businessID == "" {
		businessID = own.BusinessID
	}
	if businessID == "" {
		return authz.Scope{}, apperror.InvalidInput("businessId is required")
	}
	if own.BusinessID != "" && businessID != own.BusinessID {
		return authz.Scope{}, apperror.ErrForbidden
	}
	return authz.Scope{BusinessID: businessID, BranchID: own.BranchID}, nil
}

// orders returns the scope's non-cancelled orders created in [from, to).
func (s *Service) orders(ctx context.Context, scope authz.Scope, from, to time.Time) ([]order.Order, error) {
	return s.src.Orders.FindMany(ctx, store.Query{Filter: tenant.Filter(scope, tenant.Branch).And(
		store.Ne("status", order.StatusCancelled),
		store.Gte("created_at", from),
		store.Lt("created_at", to),
	)})
}

func (s *Service) expenses(ctx context.Context, scope authz.Scope, from, to time.Time) ([]expense.Expense, error) {
	return s.src.Expenses.FindMany(ctx, store.Query{Filter: tenant.Filter(scope, tenant.Branch).And(
		store.Gte("spent_at", from),
		store.Lt("spent_at", to),
	)})
}

func (s *Service) branches(ctx context.Context, scope authz.Scope) ([]branch.Branch, error) {
	return s.src.Branches.FindMany(ctx, store.Query{
		Filter:  tenant.Filter(scope, branch.Columns),
		OrderBy: []store.Order{{Field: "name"}, {Field: "id"}},
	})
}

// load serves key from the view cache, computing it at most once across
// concurrent callers on a miss. The shared computation runs detached from
// the caller that started it so other waiters never see its cancellation.
func load[T any](ctx context.Context, s *Service, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if b, ok := s.cache.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		out, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, key, b)
		}
		return out, nil
	})
	if err != nil {
		s.logger.Error("report failed", zap.String("key", key), zap.Error(err))
		return zero, apperror.Internal(err)
	}
	if shared {
		s.logger.Debug("report shared", zap.String("key", key))
	}
	return v.(T), nil
}

func accumulate(ser series, orders []order.Order) []Point {
	points := make([]Point, len(ser.labels))
	for i, l := range ser.labels {
		points[i] = Point{Label: l, Sales: decimal.Zero}
	}
	for _, o := range orders {
		i := ser.index(o.CreatedAt)
		if i < 0 || i >= len(points) {
			continue
		}
		points[i].Sales = points[i].Sales.Add(o.Total)
	}
	return points
}

func sales(orders []order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

func spent(expenses []expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
