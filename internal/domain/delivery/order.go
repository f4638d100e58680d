package delivery

import (
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
)

// Status is the lifecycle position of a pending order
type Status string

const (
	// StatusQueued orders were placed today and have not yet been advanced
	StatusQueued Status = "QUEUED"

	// StatusInTransit orders have been advanced at least once and still have days remaining
	StatusInTransit Status = "IN_TRANSIT"

	// StatusResolved orders reached zero days remaining and were removed from the queue
	StatusResolved Status = "RESOLVED"
)

// SupplierOrder is a raw material shipment on its way to the team.
// Prices are snapshotted at placement; later level changes never alter them.
type SupplierOrder struct {
	ID            string             `json:"id"`
	SupplierID    string             `json:"supplierId"`
	Material      inventory.Material `json:"material"`
	Quantity      int                `json:"quantity"`
	DaysRemaining int                `json:"daysRemaining"`
	LeadTime      int                `json:"leadTime"`
	OrderedOnDay  int                `json:"orderedOnDay"`
	UnitPrice     float64            `json:"unitPrice"`
	PurchaseCost  float64            `json:"purchaseCost"`
	TransportCost float64            `json:"transportCost"`
}

// Status derives the order's lifecycle position from its countdown
func (o SupplierOrder) Status() Status {
	return statusFor(o.DaysRemaining, o.LeadTime)
}

// LandedCost is what the material is carried at once it arrives
func (o SupplierOrder) LandedCost() float64 {
	return o.PurchaseCost + o.TransportCost
}

// CustomerOrder is a finished goods shipment whose revenue is realised on arrival.
// NetRevenue is fixed at placement as Quantity*UnitPrice - TransportCost.
type CustomerOrder struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customerId"`
	Quantity      int     `json:"quantity"`
	DaysRemaining int     `json:"daysRemaining"`
	LeadTime      int     `json:"leadTime"`
	OrderedOnDay  int     `json:"orderedOnDay"`
	UnitPrice     float64 `json:"unitPrice"`
	TransportCost float64 `json:"transportCost"`
	NetRevenue    float64 `json:"netRevenue"`
}

func (o CustomerOrder) Status() Status {
	return statusFor(o.DaysRemaining, o.LeadTime)
}

func statusFor(daysRemaining, leadTime int) Status {
	switch {
	case daysRemaining <= 0:
		return StatusResolved
	case daysRemaining == leadTime:
		return StatusQueued
	default:
		return StatusInTransit
	}
}
