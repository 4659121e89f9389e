package database

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T, db *DB, name, description string, available bool, ownerID int64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: description, Available: available, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func TestItemOperations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	drill := createTestItem(t, db, "Drill", "Cordless drill", true, 1)
	saw := createTestItem(t, db, "Saw", "Hand saw", false, 1)
	createTestItem(t, db, "Ladder", "Folding ladder", true, 2)

	t.Run("GetItemByID", func(t *testing.T) {
		got, err := db.GetItemByID(ctx, drill.ID)
		require.NoError(t, err)
		assert.Equal(t, drill, got)
		assert.Nil(t, got.RequestID)

		_, err = db.GetItemByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("GetItemsByOwner", func(t *testing.T) {
		items, err := db.GetItemsByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, drill.ID, items[0].ID)
		assert.Equal(t, saw.ID, items[1].ID)

		items, err = db.GetItemsByOwner(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("UpdateItem", func(t *testing.T) {
		saw.Available = true
		saw.Description = "Sharp hand saw"
		require.NoError(t, db.UpdateItem(ctx, saw))

		got, err := db.GetItemByID(ctx, saw.ID)
		require.NoError(t, err)
		assert.True(t, got.Available)
		assert.Equal(t, "Sharp hand saw", got.Description)

		err = db.UpdateItem(ctx, &models.Item{ID: 999, Name: "x", Description: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestItemsByRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestID := int64(7)

	item := &models.Item{Name: "Tent", Description: "Two person tent", Available: true, OwnerID: 3, RequestID: &requestID}
	require.NoError(t, db.CreateItem(ctx, item))
	createTestItem(t, db, "Stove", "Camping stove", true, 3)

	items, err := db.GetItemsByRequest(ctx, requestID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	require.NotNil(t, items[0].RequestID)
	assert.Equal(t, requestID, *items[0].RequestID)
}

func TestSearchAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	drill := createTestItem(t, db, "Дрель", "Аккумуляторная дрель", true, 1)
	createTestItem(t, db, "Дрель ударная", "Сломана", false, 1)
	screwdriver := createTestItem(t, db, "Screwdriver", "Works like a DRILL", true, 2)

	t.Run("UnicodeCaseInsensitive", func(t *testing.T) {
		items, err := db.SearchAvailableItems(ctx, "дРеЛь")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, drill.ID, items[0].ID)
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		items, err := db.SearchAvailableItems(ctx, "drill")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, screwdriver.ID, items[0].ID)
	})

	t.Run("WildcardsAreLiteral", func(t *testing.T) {
		items, err := db.SearchAvailableItems(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("NoMatch", func(t *testing.T) {
		items, err := db.SearchAvailableItems(ctx, "hammer")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}
