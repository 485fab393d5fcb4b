package gormstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-pos/internal/store"
	"go-pos/internal/store/gormstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type item struct {
	ID         int
	BusinessID string
	BranchID   string
	Name       string
	DeletedAt  *time.Time
}

func setupGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func TestApply_BuildsWhereClause(t *testing.T) {
	db, _ := setupGorm(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	f := store.Filter{
		store.Eq("business_id", "b1"),
		store.Contains("name", "pen"),
		store.In("branch_id", []string{"br1", "br2"}),
		store.IsNull("deleted_at"),
	}
	var rows []item
	stmt := gormstore.Apply(dry.Model(&item{}), f).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `"business_id" = $1`)
	assert.Contains(t, sql, `"name" ILIKE $2`)
	assert.Contains(t, sql, `"branch_id" IN (`)
	assert.Contains(t, sql, `"deleted_at" IS NULL`)
	assert.Contains(t, stmt.Vars, "%pen%")
	assert.Contains(t, stmt.Vars, "br2")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "uq_stock"}, store.ErrDuplicate},
		{"fk violation", &pgconn.PgError{Code: "23503"}, store.ErrReference},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, store.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, gormstore.MapError(tt.in), tt.want)
		})
	}

	t.Run("passthrough", func(t *testing.T) {
		raw := errors.New("connection reset")
		assert.Equal(t, raw, gormstore.MapError(raw))
		assert.NoError(t, gormstore.MapError(nil))
	})
}

func TestTransaction(t *testing.T) {
	t.Run("commit on success", func(t *testing.T) {
		db, mock := setupGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := gormstore.New(db).Transaction(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := setupGorm(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := gormstore.New(db).Transaction(context.Background(), func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		db, mock := setupGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		tx := gormstore.New(db)
		err := tx.Transaction(context.Background(), func(ctx context.Context) error {
			return tx.Transaction(ctx, func(ctx context.Context) error { return nil })
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
