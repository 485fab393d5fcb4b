package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-pos/internal/store"
	"go-pos/internal/store/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type product struct {
	ID         int
	BusinessID string
	Name       string
	Price      decimal.Decimal
	Archived   bool
	DeletedAt  *time.Time
	CreatedAt  time.Time
}

func seed(t *testing.T) (*memstore.DB, *memstore.Table[product]) {
	t.Helper()
	db := memstore.New()
	tbl := memstore.NewTable[product](db, memstore.WithAutoIncrement(), memstore.WithUnique("business_id", "name"))
	ctx := context.Background()

	for _, p := range []product{
		{BusinessID: "b1", Name: "Blue Pen", Price: decimal.NewFromInt(3)},
		{BusinessID: "b1", Name: "Red Pen", Price: decimal.NewFromInt(5)},
		{BusinessID: "b1", Name: "Notebook", Price: decimal.NewFromInt(12)},
		{BusinessID: "b2", Name: "Stapler", Price: decimal.NewFromInt(20)},
	} {
		p := p
		assert.NoError(t, tbl.Create(ctx, &p))
	}
	return db, tbl
}

func TestTable_CreateAssignsKeysAndTimestamps(t *testing.T) {
	_, tbl := seed(t)

	row, err := tbl.First(context.Background(), store.Filter{store.Eq("name", "Notebook")})
	assert.NoError(t, err)
	assert.Equal(t, 3, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestTable_FindMany(t *testing.T) {
	_, tbl := seed(t)
	ctx := context.Background()

	t.Run("filter contains is case-insensitive", func(t *testing.T) {
		rows, err := tbl.FindMany(ctx, store.Query{Filter: store.Filter{store.Contains("name", "PEN")}})
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("order and paginate", func(t *testing.T) {
		rows, err := tbl.FindMany(ctx, store.Query{
			Filter:  store.Filter{store.Eq("business_id", "b1")},
			OrderBy: []store.Order{{Field: "price", Desc: true}},
			Skip:    1,
			Take:    1,
		})
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Red Pen", rows[0].Name)
	})

	t.Run("skip past the end", func(t *testing.T) {
		rows, err := tbl.FindMany(ctx, store.Query{Skip: 10})
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("range and in operators", func(t *testing.T) {
		rows, err := tbl.FindMany(ctx, store.Query{Filter: store.Filter{
			store.Gte("price", decimal.NewFromInt(5)),
			store.Lt("price", 20),
			store.In("business_id", []string{"b1", "b3"}),
		}})
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := tbl.FindMany(ctx, store.Query{Filter: store.Filter{store.Eq("colour", "red")}})
		assert.Error(t, err)
	})
}

func TestTable_NullAndSave(t *testing.T) {
	_, tbl := seed(t)
	ctx := context.Background()

	row, err := tbl.First(ctx, store.Filter{store.Eq("name", "Stapler")})
	assert.NoError(t, err)

	now := time.Now()
	row.DeletedAt = &now
	assert.NoError(t, tbl.Save(ctx, row))

	live, err := tbl.Count(ctx, store.Filter{store.IsNull("deleted_at")})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), live)
	assert.Equal(t, 4, tbl.Len())
}

func TestTable_UniqueAndDelete(t *testing.T) {
	_, tbl := seed(t)
	ctx := context.Background()

	err := tbl.Create(ctx, &product{BusinessID: "b1", Name: "Red Pen"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// same name under another tenant is fine
	assert.NoError(t, tbl.Create(ctx, &product{BusinessID: "b2", Name: "Red Pen"}))

	n, err := tbl.Delete(ctx, store.Filter{store.Eq("business_id", "b2")})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = tbl.First(ctx, store.Filter{store.Eq("business_id", "b2")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDB_TransactionRollsBackEveryTable(t *testing.T) {
	db, tbl := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Transaction(ctx, func(ctx context.Context) error {
		if err := tbl.Create(ctx, &product{BusinessID: "b1", Name: "Eraser"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, tbl.Len())

	// sequence is restored too
	p := product{BusinessID: "b1", Name: "Eraser"}
	assert.NoError(t, tbl.Create(ctx, &p))
	assert.Equal(t, 5, p.ID)
}
