package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parolaccia/internal/models"
)

func testMenu() *models.Menu {
	menu := &models.Menu{
		Currency: "ARS",
		Categories: []models.Category{
			{
				ID:   "bebidas",
				Name: "Bebidas",
				Items: []models.MenuItem{
					{SKU: "LIM01", Name: "Limonada", Price: 1500},
					{SKU: "BEB03", Name: "Gaseosa", Price: 1800},
				},
			},
			{
				ID:   "carni",
				Name: "Carni",
				Items: []models.MenuItem{
					{SKU: "CAR03", Name: "Milanesa napolitana", Price: 9200},
				},
			},
			{
				ID:   "la-nostra-pasta",
				Name: "La Nostra Pasta",
				Items: []models.MenuItem{
					{SKU: "PAS04", Name: "Gnocchi al pesto", Price: 6800},
				},
			},
			{
				ID:   "postres",
				Name: "Postres",
				Items: []models.MenuItem{
					{SKU: "POS01", Name: "Tiramisú", Price: 4200},
				},
			},
		},
	}
	menu.ResolveKinds()
	return menu
}

func TestFindItemBySKU(t *testing.T) {
	menu := testMenu()
	for _, q := range []string{"LIM01", "lim01", "Lim01"} {
		m, ok := FindItem(menu, q)
		require.True(t, ok, "FindItem(%q)", q)
		assert.Equal(t, "LIM01", m.Item.SKU)
	}
}

func TestFindItemByNameSubstring(t *testing.T) {
	menu := testMenu()

	m, ok := FindItem(menu, "limonada")
	require.True(t, ok)
	assert.Equal(t, "LIM01", m.Item.SKU)
	assert.Equal(t, "bebidas", m.CategoryID)
	assert.Equal(t, models.KindBeverage, m.Kind)

	// accent-insensitive
	m, ok = FindItem(menu, "tiramisu")
	require.True(t, ok)
	assert.Equal(t, "POS01", m.Item.SKU)

	// partial name
	m, ok = FindItem(menu, "milanesa")
	require.True(t, ok)
	assert.Equal(t, "CAR03", m.Item.SKU)
	assert.Equal(t, models.KindMain, m.Kind)
}

func TestFindItemMiss(t *testing.T) {
	menu := testMenu()
	_, ok := FindItem(menu, "sushi")
	assert.False(t, ok)
	_, ok = FindItem(menu, "")
	assert.False(t, ok)
}

func TestResolveItemTokenRetry(t *testing.T) {
	menu := testMenu()

	// whole message misses, longest token "limonada" hits
	m, ok := ResolveItem(menu, "quiero una limonada por favor")
	require.True(t, ok)
	assert.Equal(t, "LIM01", m.Item.SKU)

	// plural token still resolves
	m, ok = ResolveItem(menu, "dos limonadas")
	require.True(t, ok)
	assert.Equal(t, "LIM01", m.Item.SKU)

	// punctuation is a token separator
	m, ok = ResolveItem(menu, "hola, traeme gnocchi.")
	require.True(t, ok)
	assert.Equal(t, "PAS04", m.Item.SKU)
}

func TestResolveItemNeverGuesses(t *testing.T) {
	menu := testMenu()
	_, ok := ResolveItem(menu, "quiero un helado de pistacho")
	assert.False(t, ok)
}
