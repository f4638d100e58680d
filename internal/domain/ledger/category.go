package ledger

import "fmt"

// Category groups transactions for financial reporting
type Category string

const (
	// CategoryCostOfGoods covers raw materials and their conversion into finished goods
	CategoryCostOfGoods Category = "COSTS_OF_GOODS"

	// CategoryLogistics covers inbound supplier shipments
	CategoryLogistics Category = "LOGISTICS"

	// CategoryOperations covers warehouse holding costs
	CategoryOperations Category = "OPERATIONS"

	// CategoryPenalties covers overstock penalties
	CategoryPenalties Category = "PENALTIES"

	// CategoryRevenue covers net revenue from delivered customer orders
	CategoryRevenue Category = "REVENUE"

	// CategoryAdjustments covers balance corrections that are not profit or loss
	CategoryAdjustments Category = "ADJUSTMENTS"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryCostOfGoods,
		CategoryLogistics,
		CategoryOperations,
		CategoryPenalties,
		CategoryRevenue,
		CategoryAdjustments,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeMaterialPurchase:  CategoryCostOfGoods,
	TransactionTypeProduction:        CategoryCostOfGoods,
	TransactionTypeSupplierTransport: CategoryLogistics,
	TransactionTypeHolding:           CategoryOperations,
	TransactionTypeOverstock:         CategoryPenalties,
	TransactionTypeSalesRevenue:      CategoryRevenue,
	TransactionTypeWriteOff:          CategoryAdjustments,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsIncome returns true if the category represents income
func (c Category) IsIncome() bool {
	return c == CategoryRevenue
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
