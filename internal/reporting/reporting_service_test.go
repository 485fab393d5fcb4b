package reporting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/expense"
	"go-pos/internal/order"
	"go-pos/internal/product"
	"go-pos/internal/reporting"
	"go-pos/internal/salesman"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/stock"
	"go-pos/internal/store"
	"go-pos/internal/store/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

var (
	owner = authz.Actor{
		ID: "owner", BusinessID: "B1",
		Permissions: authz.NewPermissionSet("report:view"),
	}
	managerBR2 = authz.Actor{
		ID: "mgr", BusinessID: "B1", BranchID: "BR2",
		Permissions: authz.NewPermissionSet("report:view"),
	}
)

type memCache struct {
	entries map[string][]byte
	sets    int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	b, ok := c.entries[key]
	return b, ok
}

func (c *memCache) Set(_ context.Context, key string, value []byte) {
	c.entries[key] = value
	c.sets++
}

func at(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 10, 0, 0, 0, time.UTC)
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ctxOrders fails reads made with a done context, like a database driver.
type ctxOrders struct {
	store.Table[order.Order]
}

func (o ctxOrders) FindMany(ctx context.Context, q store.Query) ([]order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.Table.FindMany(ctx, q)
}

func (o ctxOrders) Count(ctx context.Context, f store.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return o.Table.Count(ctx, f)
}

func setup(t *testing.T, cache *memCache) *reporting.Service {
	t.Helper()
	return setupWith(t, cache, func(o store.Table[order.Order]) store.Table[order.Order] { return o })
}

func setupWith(t *testing.T, cache *memCache, wrapOrders func(store.Table[order.Order]) store.Table[order.Order]) *reporting.Service {
	t.Helper()
	ctx := context.Background()
	db := memstore.New()

	orders := memstore.NewTable[order.Order](db, memstore.WithAutoIncrement())
	expenses := memstore.NewTable[expense.Expense](db, memstore.WithAutoIncrement())
	branches := memstore.NewTable[branch.Branch](db)
	products := memstore.NewTable[product.Product](db, memstore.WithAutoIncrement())
	salesmen := memstore.NewTable[salesman.Salesman](db)
	stocks := memstore.NewTable[stock.Stock](db, memstore.WithAutoIncrement())

	for _, b := range []branch.Branch{
		{ID: "BR2", BusinessID: "B1", Name: "Beta"},
		{ID: "BR1", BusinessID: "B1", Name: "Alpha"},
		{ID: "BR3", BusinessID: "B2", Name: "Gamma"},
	} {
		require.NoError(t, branches.Create(ctx, &b))
	}
	for _, o := range []order.Order{
		{BusinessID: "B1", BranchID: "BR1", Status: order.StatusCompleted, Total: money(500), CreatedAt: at(time.March, 10)},
		{BusinessID: "B1", BranchID: "BR2", Status: order.StatusPending, Total: money(300), CreatedAt: at(time.March, 9)},
		{BusinessID: "B1", BranchID: "BR1", Status: order.StatusCancelled, Total: money(1000), CreatedAt: at(time.March, 10)},
		{BusinessID: "B1", BranchID: "BR1", Status: order.StatusCompleted, Total: money(400), CreatedAt: at(time.March, 1)},
		{BusinessID: "B2", BranchID: "BR3", Status: order.StatusCompleted, Total: money(999), CreatedAt: at(time.March, 10)},
	} {
		require.NoError(t, orders.Create(ctx, &o))
	}
	for _, e := range []expense.Expense{
		{BusinessID: "B1", BranchID: "BR1", Title: "Rent", Amount: money(100), SpentAt: at(time.March, 6)},
		{BusinessID: "B1", BranchID: "BR1", Title: "Rent", Amount: money(50), SpentAt: at(time.February, 27)},
	} {
		require.NoError(t, expenses.Create(ctx, &e))
	}
	require.NoError(t, products.Create(ctx, &product.Product{BusinessID: "B1", Name: "Tea", SKU: "T1"}))
	require.NoError(t, products.Create(ctx, &product.Product{BusinessID: "B2", Name: "Tea", SKU: "T1"}))
	require.NoError(t, salesmen.Create(ctx, &salesman.Salesman{ID: "s1", BusinessID: "B1", BranchID: "BR1", Name: "Dana"}))
	for _, s := range []stock.Stock{
		{BusinessID: "B1", BranchID: "BR1", ProductID: 1, Quantity: 3},
		{BusinessID: "B1", BranchID: "BR1", ProductID: 2, Quantity: 20},
		{BusinessID: "B1", BranchID: "BR2", ProductID: 1, Quantity: 5},
		{BusinessID: "B2", BranchID: "BR3", ProductID: 9, Quantity: 1},
	} {
		require.NoError(t, stocks.Create(ctx, &s))
	}

	opts := reporting.Options{
		Now:               func() time.Time { return now },
		Location:          time.UTC,
		LowStockThreshold: 5,
	}
	if cache != nil {
		opts.Cache = cache
	}
	return reporting.NewService(reporting.Sources{
		Orders:   wrapOrders(orders),
		Expenses: expenses,
		Branches: branches,
		Products: products,
		Salesmen: salesmen,
		Stocks:   stocks,
	}, opts)
}

func TestDashboardStats_DetachedFromCallerCancellation(t *testing.T) {
	cache := &memCache{entries: map[string][]byte{}}
	svc := setupWith(t, cache, func(o store.Table[order.Order]) store.Table[order.Order] {
		return ctxOrders{Table: o}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := svc.DashboardStats(ctx, owner, "B1")
	require.NoError(t, err)
	assert.Equal(t, "800", stats.Sales.String())
	assert.Equal(t, 1, cache.sets)
}

func TestDashboardStats(t *testing.T) {
	svc := setup(t, nil)

	stats, err := svc.DashboardStats(context.Background(), owner, "B1")
	require.NoError(t, err)

	assert.Equal(t, "800", stats.Sales.String())
	assert.Equal(t, int64(2), stats.Orders)
	assert.Equal(t, "100", stats.Expenses.String())
	assert.Equal(t, int64(2), stats.Branches)
	assert.Equal(t, int64(1), stats.Products)
	assert.Equal(t, int64(1), stats.Salesmen)
	assert.Equal(t, reporting.Notes{Sales: "+100.0%", Orders: "+100.0%", Expenses: "+100.0%"}, stats.Notes)
}

func TestDashboardStats_BranchManagerSeesOwnBranch(t *testing.T) {
	svc := setup(t, nil)

	stats, err := svc.DashboardStats(context.Background(), managerBR2, "")
	require.NoError(t, err)
	assert.Equal(t, "300", stats.Sales.String())
	assert.Equal(t, int64(1), stats.Branches)
	assert.Equal(t, "+0%", stats.Notes.Sales)
}

func TestAuthorization(t *testing.T) {
	svc := setup(t, nil)
	ctx := context.Background()

	_, err := svc.DashboardStats(ctx, owner, "B2")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	noPerm := owner
	noPerm.Permissions = authz.NewPermissionSet("order:view")
	_, err = svc.BranchPerformance(ctx, noPerm, "B1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	root := authz.Actor{ID: "root", Superadmin: true, Permissions: authz.NewPermissionSet("report:view")}
	_, err = svc.StockOverview(ctx, root, "")
	var ae *apperror.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperror.CodeInvalidInput, ae.Code)

	stats, err := svc.DashboardStats(ctx, root, "B2")
	require.NoError(t, err)
	assert.Equal(t, "999", stats.Sales.String())
}

func TestBranchPerformance(t *testing.T) {
	svc := setup(t, nil)

	got, err := svc.BranchPerformance(context.Background(), owner, "B1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "BR1", got[0].BranchID)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, "500", got[0].Sales.String())
	assert.Equal(t, int64(1), got[0].Orders)
	assert.Equal(t, "100", got[0].Expenses.String())
	assert.Equal(t, "400", got[0].Profit.String())

	assert.Equal(t, "BR2", got[1].BranchID)
	assert.Equal(t, "300", got[1].Profit.String())
}

func TestSalesOverview(t *testing.T) {
	svc := setup(t, nil)
	ctx := context.Background()

	sales := func(points []reporting.Point) map[string]string {
		out := map[string]string{}
		for _, p := range points {
			if !p.Sales.IsZero() {
				out[p.Label] = p.Sales.String()
			}
		}
		return out
	}

	week, err := svc.SalesOverview(ctx, owner, "B1", reporting.RangeWeek)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "Mon", week[0].Label)
	assert.Equal(t, map[string]string{"Mon": "300", "Tue": "500"}, sales(week))

	month, err := svc.SalesOverview(ctx, owner, "B1", reporting.RangeMonth)
	require.NoError(t, err)
	require.Len(t, month, 31)
	assert.Equal(t, map[string]string{"1": "400", "9": "300", "10": "500"}, sales(month))

	year, err := svc.SalesOverview(ctx, owner, "B1", reporting.RangeYear)
	require.NoError(t, err)
	require.Len(t, year, 12)
	assert.Equal(t, map[string]string{"Mar": "1200"}, sales(year))

	_, err = svc.SalesOverview(ctx, owner, "B1", "decade")
	var ae *apperror.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperror.CodeInvalidInput, ae.Code)
}

func TestStockOverview(t *testing.T) {
	svc := setup(t, nil)

	got, err := svc.StockOverview(context.Background(), owner, "B1")
	require.NoError(t, err)
	assert.Equal(t, []reporting.StockLevel{
		{BranchID: "BR1", Name: "Alpha", Units: 23, LowStock: 1},
		{BranchID: "BR2", Name: "Beta", Units: 5, LowStock: 1},
	}, got)
}

func TestReportsAreCachedUnderViewKeys(t *testing.T) {
	cache := &memCache{entries: map[string][]byte{}}
	svc := setup(t, cache)
	ctx := context.Background()

	first, err := svc.DashboardStats(ctx, owner, "B1")
	require.NoError(t, err)
	assert.Contains(t, cache.entries, "view:dashboard:stats:B1::2026-03-11")

	second, err := svc.DashboardStats(ctx, owner, "B1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.True(t, first.Sales.Equal(second.Sales))
	assert.Equal(t, first.Notes, second.Notes)
}
