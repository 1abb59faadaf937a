package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classifieds-portal/internal/models"
)

func TestCategoryCRUD(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	category := models.Category{Name: "Electronics"}
	require.NoError(t, gdb.CreateCategory(ctx, &category))
	require.NotZero(t, category.ID)

	got, err := gdb.GetCategoryByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.Name)

	require.NoError(t, gdb.UpdateCategory(ctx, category.ID, "Gadgets"))
	got, err = gdb.GetCategoryByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Name)

	assert.ErrorIs(t, gdb.UpdateCategory(ctx, category.ID+100, "Nope"), ErrNotFound)

	require.NoError(t, gdb.DeleteCategory(ctx, category.ID))
	_, err = gdb.GetCategoryByID(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, gdb.DeleteCategory(ctx, category.ID), ErrNotFound)
}

func TestTypeCRUD(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	adType := models.AdType{Name: "Wanted"}
	require.NoError(t, gdb.CreateType(ctx, &adType))

	got, err := gdb.GetTypeByID(ctx, adType.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wanted", got.Name)

	require.NoError(t, gdb.UpdateType(ctx, adType.ID, "Offered"))
	got, err = gdb.GetTypeByID(ctx, adType.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offered", got.Name)

	require.NoError(t, gdb.DeleteType(ctx, adType.ID))
	_, err = gdb.GetTypeByID(ctx, adType.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryCascades(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	categoryID, typeID := seedTaxonomy(t, gdb)

	other := models.Category{Name: "Furniture"}
	require.NoError(t, gdb.CreateCategory(ctx, &other))

	for i := 0; i < 3; i++ {
		listing := testListing("seller", categoryID, typeID)
		require.NoError(t, gdb.CreateListing(ctx, &listing))
	}
	kept := testListing("seller", other.ID, typeID)
	require.NoError(t, gdb.CreateListing(ctx, &kept))

	before, err := gdb.GetAllListings(ctx)
	require.NoError(t, err)
	require.Len(t, before, 4)

	require.NoError(t, gdb.DeleteCategory(ctx, categoryID))

	after, err := gdb.GetAllListings(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, other.ID, after[0].CategoryID)
}

func TestDeleteTypeCascades(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	categoryID, typeID := seedTaxonomy(t, gdb)

	listing := testListing("seller", categoryID, typeID)
	require.NoError(t, gdb.CreateListing(ctx, &listing))

	require.NoError(t, gdb.DeleteType(ctx, typeID))

	remaining, err := gdb.GetAllListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestTaxonomyNameMaps(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	vehicles := models.Category{Name: "Vehicles"}
	require.NoError(t, gdb.CreateCategory(ctx, &vehicles))
	pets := models.Category{Name: "Pets"}
	require.NoError(t, gdb.CreateCategory(ctx, &pets))
	sale := models.AdType{Name: "For Sale"}
	require.NoError(t, gdb.CreateType(ctx, &sale))

	categories, err := gdb.CategoryNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{vehicles.ID: "Vehicles", pets.ID: "Pets"}, categories)

	types, err := gdb.TypeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{sale.ID: "For Sale"}, types)
}

func TestExistsChecks(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	categoryID, typeID := seedTaxonomy(t, gdb)

	exists, err := gdb.CategoryExists(ctx, categoryID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = gdb.CategoryExists(ctx, categoryID+50)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = gdb.TypeExists(ctx, typeID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = gdb.TypeExists(ctx, typeID+50)
	require.NoError(t, err)
	assert.False(t, exists)
}
