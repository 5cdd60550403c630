package archive

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parolaccia/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite3", filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	items := []models.LineItem{
		{SKU: "LIM01", Name: "Limonada", Qty: 2, Price: 1500, CategoryID: "bebidas"},
	}
	order, err := store.Save("sess-1", "12", 2, items, 3000, "ARS")
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, "12", order.TableID)
	assert.Equal(t, 3000.0, order.Total)

	var decoded []models.LineItem
	require.NoError(t, json.Unmarshal([]byte(order.Items), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "LIM01", decoded[0].SKU)

	_, err = store.Save("sess-2", "7", 4, nil, 0, "ARS")
	require.NoError(t, err)

	orders, err := store.Recent(10)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOpenUnknownDialect(t *testing.T) {
	_, err := Open("bogus", "dsn")
	assert.Error(t, err)
}
