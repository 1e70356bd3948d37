package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/logging"
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 database.NewGormLogger(logging.Discard(), 0),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgres_ForUpdateLocksRows(t *testing.T) {
	db, mock := newPostgresMock(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE "products"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock"}).AddRow(7, "Vitamin", 1))
	mock.ExpectRollback()

	require.NoError(t, uow.Begin(context.Background()))
	got, err := For[model.Product, int64](uow).GetWithSpecification(context.Background(),
		specification.New[model.Product](specification.Eq("id", int64(7))).ForUpdate().Build())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Stock)

	uow.Rollback()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CompleteRollsBackOnConflict(t *testing.T) {
	db, mock := newPostgresMock(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "products" WHERE "products"."id" = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := For[model.Product, int64](uow)
	repo.Delete(&model.Product{ID: 7})
	repo.Update(&model.Product{ID: 8, Name: "Gone"})

	n, err := uow.Complete(context.Background())
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CountUsesCriteriaOnly(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := For[model.Animal, int64](NewUnitOfWork(db))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "animals" WHERE "animals"."species_id" = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	spec := specification.New[model.Animal](specification.Eq("species_id", int64(5))).
		Include("Species").
		OrderByDescending("price").
		Page(2, 10).
		Build()
	n, err := repo.GetCount(context.Background(), spec)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
