package levels_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/pricing"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
)

func TestNewCatalog_BuiltinLevelsAreValid(t *testing.T) {
	// Act
	catalog, err := levels.NewCatalog("")

	// Assert
	require.NoError(t, err)
	all := catalog.List()
	require.Len(t, all, shared.MaxLevelID+1)
	for i, cfg := range all {
		assert.Equal(t, shared.LevelID(i), cfg.ID)
		assert.NoError(t, cfg.Validate())
	}
}

func TestCatalog_LevelZeroBasics(t *testing.T) {
	catalog := levels.MustNewCatalog()

	cfg, err := catalog.Get(0)

	require.NoError(t, err)
	assert.Equal(t, "First Shift", cfg.Name)
	assert.Equal(t, 10, cfg.DaysToComplete)
	assert.Equal(t, 1000.0, cfg.InitialCash)
	assert.Equal(t, level.DefaultRecipe(), cfg.Recipe)
	assert.Equal(t, 80, cfg.InitialInventory.Get(inventory.Potato))

	supplier, ok := cfg.SupplierByID("meat-market")
	require.True(t, ok)
	offer, ok := supplier.Offer(inventory.Patty)
	require.True(t, ok)
	assert.Equal(t, 3.0, offer.BasePrice)
}

func TestCatalog_RecipeDefaultsWhenOmitted(t *testing.T) {
	cfg, err := levels.MustNewCatalog().Get(1)

	require.NoError(t, err)
	assert.Equal(t, level.DefaultRecipe(), cfg.Recipe)
	assert.Equal(t, 0.5, cfg.Overstock[inventory.FinishedGoods].PenaltyPerUnit)
}

func TestCatalog_CeilingLevelPricesByUpperBound(t *testing.T) {
	cfg, err := levels.MustNewCatalog().Get(3)
	require.NoError(t, err)
	require.Equal(t, level.TierPolicyCeiling, cfg.TierPolicy)
	supplier, _ := cfg.SupplierByID("meat-market")
	resolver := pricing.ForLevel(cfg)

	small, err := resolver.SupplierUnitPrice(supplier, inventory.Patty, 30)
	require.NoError(t, err)
	large, err := resolver.SupplierUnitPrice(supplier, inventory.Patty, 100)
	require.NoError(t, err)

	assert.Equal(t, 3.5, small)
	assert.Equal(t, 3.0, large)
}

func TestCatalog_GetUnknownLevel(t *testing.T) {
	_, err := levels.MustNewCatalog().Get(7)

	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewCatalog_OverrideDirectory(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	override := `
id: 0
name: Custom Tutorial
daysToComplete: 3
initialCash: 50
scoring: {maxScore: 10, targetProfit: 5}
suppliers:
  - id: only
    name: Only Supplier
    leadTime: 0
    offers:
      patty: {basePrice: 1}
customers:
  - id: buyer
    name: Buyer
    pricePerUnit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level0.yaml"), []byte(override), 0644))

	// Act
	catalog, err := levels.NewCatalog(dir)

	// Assert
	require.NoError(t, err)
	cfg, err := catalog.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Custom Tutorial", cfg.Name)
	assert.Equal(t, level.TierPolicyFloor, cfg.TierPolicy)

	builtin, err := catalog.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Catering Contracts", builtin.Name)
}

func TestParseDefinition_RejectsInvalidLevels(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "id: 0\nname: x\ncolour: red\n",
			wantErr: "colour",
		},
		{
			name:    "unknown material",
			yaml:    "id: 0\nname: x\ninitialInventory: {onion: 3}\n",
			wantErr: "onion",
		},
		{
			name:    "level id out of range",
			yaml:    "id: 9\nname: x\n",
			wantErr: "level id must be between",
		},
		{
			name: "supplier offers finished goods",
			yaml: `
id: 0
name: Broken
daysToComplete: 3
scoring: {maxScore: 10, targetProfit: 5}
suppliers:
  - {id: s, name: S, offers: {finishedGoods: {basePrice: 1}}}
customers:
  - {id: c, name: C, pricePerUnit: 5}
`,
			wantErr: "non-raw material",
		},
		{
			name: "missing customers",
			yaml: `
id: 0
name: Broken
daysToComplete: 3
scoring: {maxScore: 10, targetProfit: 5}
suppliers:
  - {id: s, name: S, offers: {patty: {basePrice: 1}}}
`,
			wantErr: "Customers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := levels.ParseDefinition([]byte(tt.yaml))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
