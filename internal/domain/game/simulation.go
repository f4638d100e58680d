package game

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/delivery"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/pricing"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// daySimulation plays one day forward from a state without committing anything.
// AffordabilityValidator and DayProcessor both run it, so the projected cost of an
// action is exactly what processing it would charge.
type daySimulation struct {
	cfg      *level.Config
	resolver *pricing.Resolver
	option   level.DeliveryOption

	day     int
	stock   inventory.Stock
	queue   delivery.Queue
	shipped map[string]int

	result            DailyResult
	revenue           float64
	customerTransport float64
	// arrivalShortfall is how far today's realized arrivals fall below zero
	arrivalShortfall float64
}

func simulateDay(state GameState, action GameAction, cfg *level.Config) (*daySimulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("level configuration is required")
	}
	if state.GameOver {
		return nil, shared.NewValidationError("gameState.gameOver", "game is already over")
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	option, err := cfg.DeliveryOptionByID(action.DeliveryOptionID)
	if err != nil {
		return nil, err
	}
	if err := validateQuantities(action); err != nil {
		return nil, err
	}

	working := state.clone()
	sim := &daySimulation{
		cfg:      cfg,
		resolver: pricing.ForLevel(cfg),
		option:   option,
		day:      state.Day,
		stock:    working.Stock(),
		queue:    working.Queue(),
		shipped:  working.CustomerShipped,
		result: DailyResult{
			Day:             state.Day,
			Purchases:       []Purchase{},
			Sales:           []Sale{},
			DeliveredOrders: []string{},
		},
	}

	// 1-2. Advance the queues and resolve today's arrivals
	sim.resolveArrivals()

	// 3. New supplier orders
	if err := sim.placeSupplierOrders(action.SupplierOrders); err != nil {
		return nil, err
	}

	// 4. Production
	if err := sim.produce(action.Production); err != nil {
		return nil, err
	}

	// 5. Customer orders
	if err := sim.placeCustomerOrders(action.CustomerOrders); err != nil {
		return nil, err
	}

	// 6. End of day holding and overstock
	sim.chargeHolding()
	sim.checkTargets()

	return sim, nil
}

func validateQuantities(action GameAction) error {
	if action.Production < 0 {
		return shared.NewValidationError("action.production", fmt.Sprintf("cannot be negative, got %d", action.Production))
	}
	for i, o := range action.SupplierOrders {
		if !o.Material.IsValid() {
			return shared.NewValidationError(fmt.Sprintf("action.supplierOrders[%d].material", i), "material is required")
		}
		if o.Quantity < 0 {
			return shared.NewValidationError(fmt.Sprintf("action.supplierOrders[%d].quantity", i),
				fmt.Sprintf("cannot be negative, got %d", o.Quantity))
		}
	}
	for i, o := range action.CustomerOrders {
		if o.Quantity < 0 {
			return shared.NewValidationError(fmt.Sprintf("action.customerOrders[%d].quantity", i),
				fmt.Sprintf("cannot be negative, got %d", o.Quantity))
		}
	}
	return nil
}

func (s *daySimulation) resolveArrivals() {
	next, arrivals := s.queue.Advance()
	s.queue = next

	for _, o := range arrivals.Supplier {
		s.stock = s.stock.Receive(o.Material, o.Quantity, o.LandedCost())
		s.result.MaterialsReceived = s.result.MaterialsReceived.Add(o.Material, o.Quantity)
	}
	for _, o := range arrivals.Customer {
		s.result.UnitsDelivered += o.Quantity
		s.result.DeliveredOrders = append(s.result.DeliveredOrders, o.ID)
	}
	realized := arrivals.RealizedRevenue()
	if realized < 0 {
		s.arrivalShortfall = -realized
	}
	s.revenue = shared.RoundMoney(s.revenue + realized)
}

// supplierLine is everything requested of one material from one supplier today
type supplierLine struct {
	supplier level.Supplier
	material inventory.Material
	quantity int
}

type supplierLineKey struct {
	supplierID string
	material   inventory.Material
}

// mergeSupplierRequests validates each request and folds repeats of the same supplier
// and material into one line, in order of first request. Capacity applies to the merged total.
func (s *daySimulation) mergeSupplierRequests(requests []SupplierOrderRequest) ([]supplierLine, error) {
	var lines []supplierLine
	index := make(map[supplierLineKey]int)

	for i, req := range requests {
		field := fmt.Sprintf("action.supplierOrders[%d]", i)
		supplier, ok := s.cfg.SupplierByID(req.SupplierID)
		if !ok {
			return nil, shared.NewValidationError(field+".supplierId", fmt.Sprintf("unknown supplier %q", req.SupplierID))
		}
		if !req.Material.IsRaw() {
			return nil, shared.NewValidationError(field+".material", fmt.Sprintf("%s cannot be bought from suppliers", req.Material))
		}
		if req.Quantity == 0 {
			continue
		}

		offer, ok := supplier.Offer(req.Material)
		if !ok {
			return nil, shared.NewValidationError(field+".material",
				fmt.Sprintf("supplier %q does not sell %s", supplier.ID, req.Material))
		}

		key := supplierLineKey{supplierID: supplier.ID, material: req.Material}
		at, seen := index[key]
		if !seen {
			at = len(lines)
			index[key] = at
			lines = append(lines, supplierLine{supplier: supplier, material: req.Material})
		}
		total := lines[at].quantity + req.Quantity
		if offer.Capacity > 0 && total > offer.Capacity {
			return nil, shared.NewValidationError(field+".quantity",
				fmt.Sprintf("supplier %q can deliver at most %d %s per day, requested %d", supplier.ID, offer.Capacity, req.Material, total))
		}
		lines[at].quantity = total
	}
	return lines, nil
}

// placeSupplierOrders prices each merged line as a single order, so tier brackets and
// shipment costs see the full quantity however the team split its requests
func (s *daySimulation) placeSupplierOrders(requests []SupplierOrderRequest) error {
	lines, err := s.mergeSupplierRequests(requests)
	if err != nil {
		return err
	}

	for i, line := range lines {
		unitPrice, cost, err := s.resolver.SupplierPurchaseCost(line.supplier, line.material, line.quantity)
		if err != nil {
			return err
		}
		transport := s.resolver.SupplierTransportCost(line.supplier, line.quantity, s.option)
		leadTime := s.option.LeadTimeFor(line.supplier.LeadTime)

		order := delivery.SupplierOrder{
			ID:            delivery.SupplierOrderID(s.day, i+1),
			SupplierID:    line.supplier.ID,
			Material:      line.material,
			Quantity:      line.quantity,
			LeadTime:      leadTime,
			OrderedOnDay:  s.day,
			UnitPrice:     unitPrice,
			PurchaseCost:  cost,
			TransportCost: transport,
		}

		if leadTime == 0 {
			s.stock = s.stock.Receive(order.Material, order.Quantity, order.LandedCost())
			s.result.MaterialsReceived = s.result.MaterialsReceived.Add(order.Material, order.Quantity)
		} else {
			s.queue, err = s.queue.EnqueueSupplier(order)
			if err != nil {
				return err
			}
		}

		s.result.MaterialsPurchased = s.result.MaterialsPurchased.Add(order.Material, order.Quantity)
		s.result.Purchases = append(s.result.Purchases, Purchase{
			OrderID:       order.ID,
			SupplierID:    order.SupplierID,
			Material:      order.Material,
			Quantity:      order.Quantity,
			UnitPrice:     order.UnitPrice,
			PurchaseCost:  order.PurchaseCost,
			TransportCost: order.TransportCost,
			ArrivalDay:    s.day + leadTime,
		})
		s.result.Costs.Purchases = shared.RoundMoney(s.result.Costs.Purchases + cost)
		s.result.Costs.Transport = shared.RoundMoney(s.result.Costs.Transport + transport)
	}
	return nil
}

func (s *daySimulation) produce(units int) error {
	if units == 0 {
		return nil
	}
	cost := shared.RoundMoney(float64(units) * s.cfg.ProductionCostPerUnit)
	next, err := s.stock.Produce(units, s.cfg.Recipe, cost)
	if err != nil {
		return err
	}
	s.stock = next
	s.result.Production = units
	s.result.Costs.Production = cost
	return nil
}

func (s *daySimulation) placeCustomerOrders(requests []CustomerOrderRequest) error {
	seq := 0
	for i, req := range requests {
		field := fmt.Sprintf("action.customerOrders[%d]", i)
		customer, ok := s.cfg.CustomerByID(req.CustomerID)
		if !ok {
			return shared.NewValidationError(field+".customerId", fmt.Sprintf("unknown customer %q", req.CustomerID))
		}
		if req.Quantity == 0 {
			continue
		}
		if customer.MinimumDelivery > 0 && req.Quantity < customer.MinimumDelivery {
			return shared.NewValidationError(field+".quantity",
				fmt.Sprintf("customer %q requires at least %d units per delivery, got %d", customer.ID, customer.MinimumDelivery, req.Quantity))
		}
		if customer.TotalRequirement > 0 && s.shipped[customer.ID]+req.Quantity > customer.TotalRequirement {
			return shared.NewValidationError(field+".quantity",
				fmt.Sprintf("customer %q needs %d more units at most, got %d",
					customer.ID, customer.TotalRequirement-s.shipped[customer.ID], req.Quantity))
		}

		next, _, err := s.stock.Remove(inventory.FinishedGoods, req.Quantity)
		if err != nil {
			return shared.NewValidationError(field+".quantity", err.Error())
		}
		s.stock = next

		_, transport, net := s.resolver.CustomerSale(customer, req.Quantity)
		seq++
		order := delivery.CustomerOrder{
			ID:            delivery.CustomerOrderID(s.day, seq),
			CustomerID:    customer.ID,
			Quantity:      req.Quantity,
			LeadTime:      customer.LeadTime,
			OrderedOnDay:  s.day,
			UnitPrice:     customer.PricePerUnit,
			TransportCost: transport,
			NetRevenue:    net,
		}

		if customer.LeadTime == 0 {
			s.revenue = shared.RoundMoney(s.revenue + net)
			s.result.UnitsDelivered += order.Quantity
			s.result.DeliveredOrders = append(s.result.DeliveredOrders, order.ID)
		} else {
			s.queue, err = s.queue.EnqueueCustomer(order)
			if err != nil {
				return err
			}
		}

		s.shipped[customer.ID] += req.Quantity
		s.customerTransport = shared.RoundMoney(s.customerTransport + transport)
		s.result.UnitsSold += req.Quantity
		s.result.Sales = append(s.result.Sales, Sale{
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			Quantity:      order.Quantity,
			UnitPrice:     order.UnitPrice,
			TransportCost: order.TransportCost,
			NetRevenue:    order.NetRevenue,
			DeliveryDay:   s.day + customer.LeadTime,
		})
	}
	return nil
}

func (s *daySimulation) chargeHolding() {
	for _, m := range inventory.All() {
		qty := s.stock.Quantities.Get(m)
		s.result.HoldingCosts[m] = shared.RoundMoney(s.cfg.HoldingCosts.Get(m) * float64(qty))

		rule := s.cfg.Overstock[m]
		if excess := qty - rule.Threshold; excess > 0 && rule.PenaltyPerUnit > 0 {
			s.result.OverstockCosts[m] = shared.RoundMoney(float64(excess) * rule.PenaltyPerUnit)
		}
	}
	s.result.Costs.Holding = s.result.HoldingCosts.Total()
	s.result.Costs.Overstock = s.result.OverstockCosts.Total()
	s.result.Costs.Total = shared.RoundMoney(s.result.Costs.Purchases + s.result.Costs.Transport +
		s.result.Costs.Production + s.result.Costs.Holding + s.result.Costs.Overstock)
}

// checkTargets records informational safety-stock and delivery-schedule misses
func (s *daySimulation) checkTargets() {
	for _, m := range inventory.All() {
		if target := s.cfg.SafetyStock.Get(m); target > 0 && s.stock.Quantities.Get(m) < target {
			s.result.SafetyStockWarnings = append(s.result.SafetyStockWarnings, m)
		}
	}
	for _, c := range s.cfg.Customers {
		if short := c.ScheduledThrough(s.day) - s.shipped[c.ID]; short > 0 {
			if s.result.ScheduleShortfalls == nil {
				s.result.ScheduleShortfalls = map[string]int{}
			}
			s.result.ScheduleShortfalls[c.ID] = short
		}
	}
}

// breakdown is the affordability view of the simulated day.
// Delayed sales whose transport outgrew their price land as negative revenue; that
// shortfall is charged as customer transport on the day it arrives.
func (s *daySimulation) breakdown() shared.CostBreakdown {
	costs := s.result.Costs
	customerTransport := shared.RoundMoney(s.customerTransport + s.arrivalShortfall)
	return shared.CostBreakdown{
		Purchases:         costs.Purchases,
		Transport:         costs.Transport,
		Production:        costs.Production,
		Holding:           costs.Holding,
		Overstock:         costs.Overstock,
		CustomerTransport: customerTransport,
		Total:             shared.RoundMoney(costs.Total + customerTransport),
	}
}
