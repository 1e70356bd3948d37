package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/logging"
	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/specs"
	"marketplace/internal/testutil"
)

func newFactory(t *testing.T) (*gorm.DB, *repository.Factory) {
	t.Helper()
	db := testutil.OpenDB(t)
	return db, repository.NewFactory(db, repository.WithLogger(logging.Discard()))
}

func TestCatalogService_Animals(t *testing.T) {
	ctx := context.Background()
	db, f := newFactory(t)
	svc := NewCatalogService(f)

	owner := testutil.User(t, db, "owner")
	cats := testutil.Species(t, db, 1, "Cat")
	dogs := testutil.Species(t, db, 2, "Dog")
	for i, sp := range []int64{cats.ID, cats.ID, dogs.ID} {
		testutil.Create(t, db, &model.Animal{
			Name: "pet", SpeciesID: sp, OwnerID: owner.ID, Gender: model.GenderMale,
			Price: float64(10 * (i + 1)), IsActive: true,
		})
	}
	hidden := &model.Animal{Name: "hidden", SpeciesID: cats.ID, OwnerID: owner.ID, Gender: model.GenderFemale}
	testutil.Create(t, db, hidden)

	res, err := svc.ListAnimals(ctx, specs.AnimalParams{SpeciesID: cats.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 1, res.PageIndex)
	assert.Equal(t, specs.DefaultPageSize, res.PageSize)
	for _, a := range res.Data {
		require.NotNil(t, a.Species)
		assert.Equal(t, "Cat", a.Species.Name)
		require.NotNil(t, a.Owner)
	}

	got, err := svc.GetAnimal(ctx, res.Data[0].ID)
	require.NoError(t, err)
	assert.Equal(t, res.Data[0].ID, got.ID)

	_, err = svc.GetAnimal(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetAnimal(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_ListSpecies(t *testing.T) {
	db, f := newFactory(t)
	svc := NewCatalogService(f)
	testutil.Species(t, db, 1, "Rabbit")
	testutil.Species(t, db, 2, "Cat")
	testutil.Species(t, db, 3, "Parrot")

	all, err := svc.ListSpecies(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cat", all[0].Name)
	assert.Equal(t, "Rabbit", all[2].Name)

	some, err := svc.ListSpecies(context.Background(), "RR")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "Parrot", some[0].Name)
}

func TestCatalogService_ListProductsClampsPageSize(t *testing.T) {
	db, f := newFactory(t)
	svc := NewCatalogService(f)
	p := testutil.Product(t, db, 0, "Amoxicillin", 12, 3)
	testutil.Product(t, db, p.PharmacyID, "Bandage", 4, 0)

	res, err := svc.ListProducts(context.Background(), specs.ProductParams{
		InStock: true,
		Paging:  specs.Paging{PageIndex: 0, PageSize: 500},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.PageIndex)
	assert.Equal(t, specs.MaxPageSize, res.PageSize)
	assert.EqualValues(t, 1, res.Count)
	require.Len(t, res.Data, 1)
	require.NotNil(t, res.Data[0].Pharmacy)
}
