package game

import (
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
)

// SupplierOrderRequest asks one supplier for a quantity of one raw material
type SupplierOrderRequest struct {
	SupplierID string             `json:"supplierId"`
	Material   inventory.Material `json:"material"`
	Quantity   int                `json:"quantity"`
}

// CustomerOrderRequest ships finished goods to one customer
type CustomerOrderRequest struct {
	CustomerID string `json:"customerId"`
	Quantity   int    `json:"quantity"`
}

// GameAction holds a team's decisions for the current day only
type GameAction struct {
	SupplierOrders   []SupplierOrderRequest `json:"supplierOrders"`
	Production       int                    `json:"production"`
	CustomerOrders   []CustomerOrderRequest `json:"customerOrders"`
	DeliveryOptionID string                 `json:"deliveryOptionId,omitempty"`
}

// SpendsNothing reports whether every purchase and production quantity is zero
func (a GameAction) SpendsNothing() bool {
	if a.Production != 0 {
		return false
	}
	for _, o := range a.SupplierOrders {
		if o.Quantity != 0 {
			return false
		}
	}
	return true
}

// UnitsSold sums requested customer quantities
func (a GameAction) UnitsSold() int {
	total := 0
	for _, o := range a.CustomerOrders {
		total += o.Quantity
	}
	return total
}
