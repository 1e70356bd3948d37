package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
	"marketplace/internal/specification"
	"marketplace/internal/testutil"
)

func TestFor_CachesOneRepositoryPerPair(t *testing.T) {
	db := testutil.OpenDB(t)
	uow := NewUnitOfWork(db)

	a1 := For[model.Animal, int64](uow)
	a2 := For[model.Animal, int64](uow)
	p := For[model.Product, int64](uow)

	assert.Same(t, a1, a2)
	assert.NotNil(t, p)
	assert.Len(t, uow.repos, 2)

	other := NewUnitOfWork(db)
	assert.NotSame(t, a1, For[model.Animal, int64](other))
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	testutil.Species(t, db, 1, "Cat")
	uow := NewUnitOfWork(db)
	repo := For[model.Species, int64](uow)

	t.Run("found", func(t *testing.T) {
		s, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "Cat", s.Name)
	})

	t.Run("absent twice without side effects", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			s, err := repo.GetByID(ctx, 999)
			assert.NoError(t, err)
			assert.Nil(t, s)
		}
		s, err := repo.GetByIDNoTracking(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, s)
		assert.Zero(t, uow.Pending())

		var n int64
		require.NoError(t, db.Model(&model.Species{}).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})
}

func TestRepository_StringKey(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	a := testutil.User(t, db, "a")
	b := testutil.User(t, db, "b")

	uow := NewUnitOfWork(db)
	repo := For[model.Message, string](uow)
	msg := &model.Message{SenderID: a.ID, ReceiverID: b.ID, Body: "hi"}
	repo.Add(msg)
	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NotEmpty(t, msg.ID)

	got, err := For[model.Message, string](NewUnitOfWork(db)).GetByID(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hi", got.Body)
}

func TestRepository_GetAllAndFind(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	testutil.Species(t, db, 1, "Cat")
	testutil.Species(t, db, 2, "Dog")
	testutil.Species(t, db, 3, "Parrot")
	repo := For[model.Species, int64](NewUnitOfWork(db))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	detached, err := repo.GetAllNoTracking(ctx)
	require.NoError(t, err)
	assert.Len(t, detached, 3)

	found, err := repo.Find(ctx, specification.ContainsFold("name", "O"))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := repo.Find(ctx, specification.Eq("name", "Horse"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRepository_GetWithSpecification(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	testutil.Species(t, db, 1, "Cat")
	testutil.Species(t, db, 2, "Dog")
	repo := For[model.Species, int64](NewUnitOfWork(db))

	first, err := repo.GetWithSpecification(ctx, specification.New[model.Species](nil).OrderByDescending("name").Build())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Dog", first.Name)

	missing, err := repo.GetWithSpecification(ctx, specification.New[model.Species](specification.Eq("name", "Horse")).Build())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUnitOfWork_UpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	p := testutil.Product(t, db, 0, "Vitamin", 12.5, 4)

	uow := NewUnitOfWork(db)
	repo := For[model.Product, int64](uow)
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Stock = 9
	got.Price = 15
	got.RequiresPrescription = true
	repo.Update(got)
	assert.Equal(t, 1, uow.Pending())

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Zero(t, uow.Pending())

	fresh, err := For[model.Product, int64](NewUnitOfWork(db)).GetByIDNoTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, fresh.Stock)
	assert.Equal(t, 15.0, fresh.Price)
	assert.True(t, fresh.RequiresPrescription)
	assert.Equal(t, "Vitamin", fresh.Name)
}

func TestUnitOfWork_StagedMutationsAreInvisibleUntilComplete(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	uow := NewUnitOfWork(db)
	repo := For[model.Species, int64](uow)

	repo.AddRange(&model.Species{Name: "Cat"}, &model.Species{Name: "Dog"})
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUnitOfWork_CompleteIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	p := testutil.Product(t, db, 0, "Vitamin", 10, 1)

	uow := NewUnitOfWork(db)
	species := For[model.Species, int64](uow)
	products := For[model.Product, int64](uow)

	species.Add(&model.Species{Name: "Rabbit"})
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Stock = -1
	products.Update(got)

	n, err := uow.Complete(ctx)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.False(t, errors.Is(err, ErrConcurrencyConflict))

	var count int64
	require.NoError(t, db.Model(&model.Species{}).Where("name = ?", "Rabbit").Count(&count).Error)
	assert.Zero(t, count)
	fresh, err := products.GetByIDNoTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Stock)
}

func TestUnitOfWork_ConflictOnMissingRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	s := testutil.Species(t, db, 1, "Cat")

	uow := NewUnitOfWork(db)
	repo := For[model.Species, int64](uow)
	require.NoError(t, db.Delete(&model.Species{}, s.ID).Error)

	repo.Delete(s)
	_, err := uow.Complete(ctx)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)

	repo.Update(&model.Species{ID: 42, Name: "Ghost"})
	_, err = uow.Complete(ctx)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestUnitOfWork_DeleteRange(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	testutil.Species(t, db, 1, "Cat")
	testutil.Species(t, db, 2, "Camel")
	testutil.Species(t, db, 3, "Dog")

	uow := NewUnitOfWork(db)
	repo := For[model.Species, int64](uow)

	staged, err := repo.DeleteRange(ctx, specification.ContainsFold("name", "ca"))
	require.NoError(t, err)
	assert.Equal(t, 2, staged)
	assert.Equal(t, 2, uow.Pending())

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rest, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "Dog", rest[0].Name)

	none, err := repo.DeleteRange(ctx, specification.Eq("name", "Horse"))
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestUnitOfWork_BeginAndRollback(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)

	uow := NewUnitOfWork(db)
	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.Begin(ctx), ErrAlreadyBegun)

	For[model.Species, int64](uow).Add(&model.Species{Name: "Cat"})
	uow.Rollback()
	assert.Zero(t, uow.Pending())

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int64
	require.NoError(t, db.Model(&model.Species{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnitOfWork_TrackedReadsJoinTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	p := testutil.Product(t, db, 0, "Vitamin", 10, 3)

	uow := NewUnitOfWork(db)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	repo := For[model.Product, int64](uow)
	got, err := repo.GetWithSpecification(ctx,
		specification.New[model.Product](specification.Eq("id", p.ID)).ForUpdate().Build())
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Stock--
	repo.Update(got)

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	fresh, err := repo.GetByIDNoTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Stock)
}

func TestUnitOfWork_CommitObserver(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)

	var calls []int64
	var lastErr error
	f := NewFactory(db, WithCommitObserver(func(affected int64, _ time.Duration, err error) {
		calls = append(calls, affected)
		lastErr = err
	}))

	uow := f.New()
	For[model.Species, int64](uow).Add(&model.Species{Name: "Cat"})
	_, err := uow.Complete(ctx)
	require.NoError(t, err)

	dup := f.New()
	For[model.Species, int64](dup).Add(&model.Species{Name: "Cat"})
	_, err = dup.Complete(ctx)
	require.Error(t, err)

	assert.Equal(t, []int64{1, 0}, calls)
	assert.Error(t, lastErr)
	assert.NoError(t, f.Ping(ctx))
}

type keyless struct {
	Name string
}

func TestFor_EntityWithoutPrimaryKey(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := For[keyless, int64](NewUnitOfWork(db))

	_, err := repo.GetByID(context.Background(), 1)
	assert.Error(t, err)
}
