package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/kvstore"
)

func TestListStoreMutateAndGet(t *testing.T) {
	lists := NewListStore(NewKVStore(openTestDB(t)), testLogger())
	ctx := context.Background()

	err := lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		return append(all,
			domain.ShoppingList{ID: "a", Name: "Feira", IsActive: true},
			domain.ShoppingList{ID: "b", Name: "Mercado", Items: []domain.Item{{ID: "i1", Name: "leite", Quantity: 2}}},
		), nil
	})
	require.NoError(t, err)

	all := lists.List(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "Feira", all[0].Name)
	assert.NotNil(t, all[0].Items)
	assert.Empty(t, all[0].Items)

	got, err := lists.GetByID(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestListStoreGetByID_Missing(t *testing.T) {
	lists := NewListStore(kvstore.NewMemoryStore(), testLogger())

	got, err := lists.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListStoreMutateErrorSavesNothing(t *testing.T) {
	lists := NewListStore(kvstore.NewMemoryStore(), testLogger())
	ctx := context.Background()
	boom := errors.New("boom")

	err := lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		return append(all, domain.ShoppingList{ID: "x"}), boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, lists.List(ctx))
}

func TestListStoreDeleteAll(t *testing.T) {
	lists := NewListStore(kvstore.NewMemoryStore(), testLogger())
	ctx := context.Background()

	require.NoError(t, lists.Mutate(ctx, func(all []domain.ShoppingList) ([]domain.ShoppingList, error) {
		return append(all, domain.ShoppingList{ID: "x"}), nil
	}))
	require.NoError(t, lists.DeleteAll(ctx))
	assert.Empty(t, lists.List(ctx))
}

func TestListStoreActiveID(t *testing.T) {
	lists := NewListStore(kvstore.NewMemoryStore(), testLogger())
	ctx := context.Background()

	assert.Empty(t, lists.ActiveID(ctx))

	require.NoError(t, lists.SetActiveID(ctx, "abc"))
	assert.Equal(t, "abc", lists.ActiveID(ctx))

	require.NoError(t, lists.SetActiveID(ctx, ""))
	assert.Empty(t, lists.ActiveID(ctx))
}
