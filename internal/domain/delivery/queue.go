package delivery

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Queue holds every in-transit order for one game session, in placement order.
// Queue values are immutable: every operation returns a new Queue with fresh slices.
type Queue struct {
	Supplier []SupplierOrder `json:"pendingSupplierOrders"`
	Customer []CustomerOrder `json:"pendingCustomerOrders"`
}

// Arrivals are the orders resolved by one Advance
type Arrivals struct {
	Supplier []SupplierOrder
	Customer []CustomerOrder
}

// RealizedRevenue sums the snapshotted net revenue of arriving customer orders
func (a Arrivals) RealizedRevenue() float64 {
	total := 0.0
	for _, o := range a.Customer {
		total += o.NetRevenue
	}
	return shared.RoundMoney(total)
}

// IsEmpty reports whether nothing is in transit
func (q Queue) IsEmpty() bool {
	return len(q.Supplier) == 0 && len(q.Customer) == 0
}

// Validate rejects queues that could not have been produced by the engine
func (q Queue) Validate() error {
	for i, o := range q.Supplier {
		if o.DaysRemaining <= 0 {
			return shared.NewValidationError(fmt.Sprintf("pendingSupplierOrders[%d].daysRemaining", i),
				fmt.Sprintf("must be positive, got %d", o.DaysRemaining))
		}
		if o.Quantity <= 0 {
			return shared.NewValidationError(fmt.Sprintf("pendingSupplierOrders[%d].quantity", i), "must be positive")
		}
		if !o.Material.IsRaw() {
			return shared.NewValidationError(fmt.Sprintf("pendingSupplierOrders[%d].material", i), "must be a raw material")
		}
	}
	for i, o := range q.Customer {
		if o.DaysRemaining <= 0 {
			return shared.NewValidationError(fmt.Sprintf("pendingCustomerOrders[%d].daysRemaining", i),
				fmt.Sprintf("must be positive, got %d", o.DaysRemaining))
		}
		if o.Quantity <= 0 {
			return shared.NewValidationError(fmt.Sprintf("pendingCustomerOrders[%d].quantity", i), "must be positive")
		}
	}
	return nil
}

// Advance moves every order one day closer to delivery.
// Orders whose countdown reaches zero are returned as arrivals and dropped from the queue.
func (q Queue) Advance() (Queue, Arrivals) {
	var next Queue
	var arrived Arrivals

	next.Supplier = make([]SupplierOrder, 0, len(q.Supplier))
	for _, o := range q.Supplier {
		o.DaysRemaining--
		if o.DaysRemaining <= 0 {
			o.DaysRemaining = 0
			arrived.Supplier = append(arrived.Supplier, o)
			continue
		}
		next.Supplier = append(next.Supplier, o)
	}

	next.Customer = make([]CustomerOrder, 0, len(q.Customer))
	for _, o := range q.Customer {
		o.DaysRemaining--
		if o.DaysRemaining <= 0 {
			o.DaysRemaining = 0
			arrived.Customer = append(arrived.Customer, o)
			continue
		}
		next.Customer = append(next.Customer, o)
	}

	return next, arrived
}

// EnqueueSupplier appends a supplier order with DaysRemaining set to its lead time
func (q Queue) EnqueueSupplier(o SupplierOrder) (Queue, error) {
	if o.LeadTime <= 0 {
		return q, fmt.Errorf("supplier order %s: lead time must be positive to enqueue, got %d", o.ID, o.LeadTime)
	}
	o.DaysRemaining = o.LeadTime
	next := q.clone()
	next.Supplier = append(next.Supplier, o)
	return next, nil
}

// EnqueueCustomer appends a customer order with DaysRemaining set to its lead time
func (q Queue) EnqueueCustomer(o CustomerOrder) (Queue, error) {
	if o.LeadTime <= 0 {
		return q, fmt.Errorf("customer order %s: lead time must be positive to enqueue, got %d", o.ID, o.LeadTime)
	}
	o.DaysRemaining = o.LeadTime
	next := q.clone()
	next.Customer = append(next.Customer, o)
	return next, nil
}

// InTransitUnits sums the units of customer orders already shipped to customerID
func (q Queue) InTransitUnits(customerID string) int {
	total := 0
	for _, o := range q.Customer {
		if o.CustomerID == customerID {
			total += o.Quantity
		}
	}
	return total
}

func (q Queue) clone() Queue {
	next := Queue{
		Supplier: make([]SupplierOrder, len(q.Supplier), len(q.Supplier)+1),
		Customer: make([]CustomerOrder, len(q.Customer), len(q.Customer)+1),
	}
	copy(next.Supplier, q.Supplier)
	copy(next.Customer, q.Customer)
	return next
}

// SupplierOrderID builds the deterministic id of the n-th supplier order placed on day
func SupplierOrderID(day, n int) string {
	return fmt.Sprintf("S%d-%d", day, n)
}

// CustomerOrderID builds the deterministic id of the n-th customer order placed on day
func CustomerOrderID(day, n int) string {
	return fmt.Sprintf("C%d-%d", day, n)
}
