package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boligbudsjett/models"
)

func TestDefaultCatalogContents(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Overflater", "Våtrom", "Kjøkken", "Teknisk", "Annet"}, c.Categories())
	assert.Len(t, c.All(), 8)

	tests := []struct {
		item string
		tier models.Tier
		want float64
	}{
		{"Maling av vegger", models.TierBudget, 200},
		{"Nytt gulv", models.TierPremium, 2000},
		{"Nytt bad", models.TierStandard, 25000},
		{"Nytt kjøkken", models.TierStandard, 15000},
		{"Ny elektrisk", models.TierPremium, 1500},
		{"Ny ventilasjon", models.TierBudget, 1500},
		{"Nye vinduer", models.TierBudget, 6000},
		{"Nye dører", models.TierPremium, 8000},
	}

	for _, tt := range tests {
		got, ok := c.UnitCost(tt.item, tt.tier)
		if !ok || got != tt.want {
			t.Errorf("UnitCost(%q, %s) = %v, %v; want %v", tt.item, tt.tier, got, ok, tt.want)
		}
	}
}

func TestDefaultCatalogUnits(t *testing.T) {
	c := Default()

	bad, ok := c.Lookup("Nytt bad")
	require.True(t, ok)
	assert.Equal(t, models.UnitArea, bad.Unit)
	assert.Equal(t, "Våtrom", bad.Category)
	assert.NotEmpty(t, bad.Description)

	windows, ok := c.Lookup("Nye vinduer")
	require.True(t, ok)
	assert.Equal(t, models.UnitPiece, windows.Unit)
}

func TestAllIsCategoryThenItemOrder(t *testing.T) {
	c := Default()

	var names []string
	for _, item := range c.All() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{
		"Maling av vegger", "Nytt gulv", "Nytt bad", "Nytt kjøkken",
		"Ny elektrisk", "Ny ventilasjon", "Nye vinduer", "Nye dører",
	}, names)

	assert.Equal(t, 0, c.Position("Maling av vegger"))
	assert.Equal(t, 7, c.Position("Nye dører"))
	assert.Equal(t, -1, c.Position("Nytt tak"))
}

func TestLookupUnknown(t *testing.T) {
	c := Default()

	_, ok := c.Lookup("Nytt tak")
	assert.False(t, ok)

	_, ok = c.UnitCost("Nytt tak", models.TierBudget)
	assert.False(t, ok)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := Default()

	items := c.Items("Annet")
	require.Len(t, items, 2)
	items[0].Name = "changed"

	assert.Equal(t, "Nye vinduer", c.Items("Annet")[0].Name)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "::: nope"},
		{"empty", "[]"},
		{"missing tier", `
- category: A
  items:
    - name: X
      unit: m²
      prices: {Budget: 1, Standard: 2}
`},
		{"zero cost", `
- category: A
  items:
    - name: X
      unit: m²
      prices: {Budget: 0, Standard: 2, Premium: 3}
`},
		{"unknown unit", `
- category: A
  items:
    - name: X
      unit: litre
      prices: {Budget: 1, Standard: 2, Premium: 3}
`},
		{"unknown tier", `
- category: A
  items:
    - name: X
      unit: m²
      prices: {Budget: 1, Standard: 2, Luxury: 3}
`},
		{"duplicate name", `
- category: A
  items:
    - name: X
      unit: m²
      prices: {Budget: 1, Standard: 2, Premium: 3}
- category: B
  items:
    - name: X
      unit: piece
      prices: {Budget: 1, Standard: 2, Premium: 3}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
- category: Tak
  items:
    - name: Nytt tak
      unit: m²
      description: Omlegging av tak
      prices: {Budget: 1200, Standard: 1800, Premium: 2600}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	cost, ok := c.UnitCost("Nytt tak", models.TierStandard)
	assert.True(t, ok)
	assert.Equal(t, 1800.0, cost)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Len(t, def.All(), 8)
}
