package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrateSeedsDefaults(t *testing.T) {
	store := newTestStorage(t)

	types, err := store.ListExpenseTypes(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, types, len(defaultExpenseTypes))

	categories, err := store.ExpenseCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(model.Categories()))
}

func TestGetExpenseTypeByNameCaseInsensitive(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	et, err := store.GetExpenseTypeByName(ctx, "fertilizantes")
	require.NoError(t, err)
	require.NotNil(t, et)
	assert.Equal(t, "Fertilizantes", et.Name)
	assert.Equal(t, model.CategoryAgriculturalInputs, et.Category)
	assert.True(t, et.Active)
}

func TestGetExpenseTypeByNameMissing(t *testing.T) {
	store := newTestStorage(t)

	et, err := store.GetExpenseTypeByName(context.Background(), "Tipo Inexistente")
	require.NoError(t, err)
	assert.Nil(t, et)
}

func TestCreateExpenseType(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateExpenseType(ctx, &model.ExpenseType{
		Name:        "Análise de Solo",
		Description: "Laudos e análises laboratoriais de solo",
		Category:    model.CategoryAgriculturalInputs,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.True(t, created.Active)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.GetExpenseTypeByName(ctx, "análise de solo")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateExpenseTypeDuplicate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateExpenseType(ctx, &model.ExpenseType{
		Name:     "FERTILIZANTES",
		Category: model.CategoryAgriculturalInputs,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestCreateExpenseTypeValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateExpenseType(ctx, &model.ExpenseType{Name: "  ", Category: model.CategoryOther})
	assert.ErrorIs(t, err, ErrInvalidExpenseType)

	_, err = store.CreateExpenseType(ctx, &model.ExpenseType{Name: "Válido", Category: "NÃO EXISTE"})
	assert.ErrorIs(t, err, ErrInvalidExpenseType)

	_, err = store.CreateExpenseType(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestGetExpenseTypesByCategory(t *testing.T) {
	store := newTestStorage(t)

	types, err := store.GetExpenseTypesByCategory(context.Background(), model.CategoryInsurance)
	require.NoError(t, err)
	require.NotEmpty(t, types)
	for _, et := range types {
		assert.Equal(t, model.CategoryInsurance, et.Category)
	}
	// Ordered by name.
	for i := 1; i < len(types); i++ {
		assert.LessOrEqual(t, types[i-1].Name, types[i].Name)
	}
}

func TestSearchExpenseTypes(t *testing.T) {
	store := newTestStorage(t)

	types, err := store.SearchExpenseTypes(context.Background(), "seguro")
	require.NoError(t, err)
	require.NotEmpty(t, types)
	for _, et := range types {
		assert.Equal(t, model.CategoryInsurance, et.Category)
	}
}

func TestSetExpenseTypeActive(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	et, err := store.GetExpenseTypeByName(ctx, "Telefonia")
	require.NoError(t, err)
	require.NotNil(t, et)

	require.NoError(t, store.SetExpenseTypeActive(ctx, et.ID, false))

	gone, err := store.GetExpenseTypeByName(ctx, "Telefonia")
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, store.SetExpenseTypeActive(ctx, et.ID, true))

	back, err := store.GetExpenseTypeByName(ctx, "Telefonia")
	require.NoError(t, err)
	assert.NotNil(t, back)
}

func TestSetExpenseTypeActiveMissing(t *testing.T) {
	store := newTestStorage(t)

	err := store.SetExpenseTypeActive(context.Background(), 999999, false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListExpenseTypesIncludesInactive(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	et, err := store.GetExpenseTypeByName(ctx, "Internet")
	require.NoError(t, err)
	require.NotNil(t, et)
	require.NoError(t, store.SetExpenseTypeActive(ctx, et.ID, false))

	active, err := store.ListExpenseTypes(ctx, true)
	require.NoError(t, err)
	all, err := store.ListExpenseTypes(ctx, false)
	require.NoError(t, err)

	assert.Len(t, all, len(active)+1)
}
