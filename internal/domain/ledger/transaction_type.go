package ledger

import "fmt"

// TransactionType is the kind of cash movement a processed day produced
type TransactionType string

const (
	TransactionTypeMaterialPurchase  TransactionType = "MATERIAL_PURCHASE"
	TransactionTypeSupplierTransport TransactionType = "SUPPLIER_TRANSPORT"
	TransactionTypeProduction        TransactionType = "PRODUCTION"
	TransactionTypeHolding           TransactionType = "HOLDING"
	TransactionTypeOverstock         TransactionType = "OVERSTOCK"
	TransactionTypeSalesRevenue      TransactionType = "SALES_REVENUE"

	// TransactionTypeWriteOff offsets costs a zero-cash team could not pay
	TransactionTypeWriteOff TransactionType = "UNCOVERED_COST_WRITE_OFF"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeMaterialPurchase,
		TransactionTypeSupplierTransport,
		TransactionTypeProduction,
		TransactionTypeHolding,
		TransactionTypeOverstock,
		TransactionTypeSalesRevenue,
		TransactionTypeWriteOff,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
