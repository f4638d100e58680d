package pricing

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Resolver looks up unit prices and transport costs from tiered tables.
// It holds no state beyond the tier policy and is safe to share.
type Resolver struct {
	policy level.TierPolicy
}

// NewResolver creates a resolver for the given tier policy (floor when empty)
func NewResolver(policy level.TierPolicy) *Resolver {
	if policy == "" {
		policy = level.TierPolicyFloor
	}
	return &Resolver{policy: policy}
}

// ForLevel creates a resolver using the level's configured tier policy
func ForLevel(cfg *level.Config) *Resolver {
	return NewResolver(cfg.TierPolicy)
}

// SelectTier returns the index of the tier matching quantity among thresholds.
// Thresholds need not be sorted.
func SelectTier(thresholds []int, quantity int, policy level.TierPolicy) (int, bool) {
	best := -1
	for i, t := range thresholds {
		switch policy {
		case level.TierPolicyCeiling:
			if t >= quantity && (best < 0 || t < thresholds[best]) {
				best = i
			}
		default:
			if t <= quantity && (best < 0 || t > thresholds[best]) {
				best = i
			}
		}
	}
	return best, best >= 0
}

// SupplierUnitPrice resolves the unit price for buying quantity of m from supplier.
// A zero quantity costs nothing, even for materials the supplier does not stock.
func (r *Resolver) SupplierUnitPrice(supplier level.Supplier, m inventory.Material, quantity int) (float64, error) {
	if quantity == 0 {
		return 0, nil
	}
	offer, ok := supplier.Offer(m)
	if !ok {
		return 0, shared.NewValidationError("action.supplierOrders",
			fmt.Sprintf("supplier %q does not sell %s", supplier.ID, m))
	}

	thresholds := make([]int, len(offer.PriceTiers))
	for i, tier := range offer.PriceTiers {
		thresholds[i] = tier.MinQuantity
	}
	if idx, found := SelectTier(thresholds, quantity, r.policy); found {
		return offer.PriceTiers[idx].UnitPrice, nil
	}
	return offer.BasePrice, nil
}

// SupplierPurchaseCost is quantity times the resolved unit price, rounded to cents
func (r *Resolver) SupplierPurchaseCost(supplier level.Supplier, m inventory.Material, quantity int) (unitPrice, cost float64, err error) {
	unitPrice, err = r.SupplierUnitPrice(supplier, m, quantity)
	if err != nil {
		return 0, 0, err
	}
	return unitPrice, shared.RoundMoney(unitPrice * float64(quantity)), nil
}

// SupplierTransportCost resolves the shipment cost of quantity units from supplier
// under the chosen delivery option.
func (r *Resolver) SupplierTransportCost(supplier level.Supplier, quantity int, option level.DeliveryOption) float64 {
	if quantity == 0 {
		return 0
	}
	base := r.tieredCost(supplier.TransportTiers, quantity, supplier.TransportCost)
	multiplier := option.CostMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	return shared.RoundMoney(base * multiplier)
}

// CustomerTransportCost resolves the cost of shipping shipmentSize units to customer
func (r *Resolver) CustomerTransportCost(customer level.Customer, shipmentSize int) float64 {
	if shipmentSize == 0 {
		return 0
	}
	return shared.RoundMoney(r.tieredCost(customer.TransportTiers, shipmentSize, customer.TransportCost))
}

// CustomerSale prices a sale: gross revenue, transport cost and net revenue
func (r *Resolver) CustomerSale(customer level.Customer, quantity int) (gross, transport, net float64) {
	if quantity == 0 {
		return 0, 0, 0
	}
	gross = shared.RoundMoney(customer.PricePerUnit * float64(quantity))
	transport = r.CustomerTransportCost(customer, quantity)
	return gross, transport, shared.RoundMoney(gross - transport)
}

func (r *Resolver) tieredCost(tiers []level.CostTier, quantity int, fallback float64) float64 {
	thresholds := make([]int, len(tiers))
	for i, tier := range tiers {
		thresholds[i] = tier.MinQuantity
	}
	if idx, found := SelectTier(thresholds, quantity, r.policy); found {
		return tiers[idx].Cost
	}
	return fallback
}
