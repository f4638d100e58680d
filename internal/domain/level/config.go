package level

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// TierPolicy selects how a quantity is matched against a tiered price table
type TierPolicy string

const (
	// TierPolicyFloor picks the tier with the largest threshold not exceeding the quantity
	TierPolicyFloor TierPolicy = "floor"

	// TierPolicyCeiling picks the tier with the smallest threshold covering the quantity
	TierPolicyCeiling TierPolicy = "ceiling"
)

func (p TierPolicy) IsValid() bool {
	return p == TierPolicyFloor || p == TierPolicyCeiling
}

// PriceTier is a unit price applying from MinQuantity upwards
type PriceTier struct {
	MinQuantity int     `json:"minQuantity" validate:"min=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// CostTier is a flat per-shipment cost applying from MinQuantity upwards
type CostTier struct {
	MinQuantity int     `json:"minQuantity" validate:"min=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
}

// MaterialOffer describes what a supplier charges for one material
type MaterialOffer struct {
	BasePrice  float64     `json:"basePrice" validate:"gte=0"`
	Capacity   int         `json:"capacity" validate:"min=0"` // max units per order day, 0 = unlimited
	PriceTiers []PriceTier `json:"priceTiers" validate:"dive"`
}

// Supplier sells raw materials with a fixed lead time
type Supplier struct {
	ID             string                               `json:"id" validate:"required"`
	Name           string                               `json:"name" validate:"required"`
	LeadTime       int                                  `json:"leadTime" validate:"min=0"`
	Offers         map[inventory.Material]MaterialOffer `json:"offers" validate:"required,min=1,dive"`
	TransportTiers []CostTier                           `json:"transportTiers" validate:"dive"`
	TransportCost  float64                              `json:"transportCost" validate:"gte=0"` // when no tier matches
}

// Offer returns the supplier's offer for m
func (s Supplier) Offer(m inventory.Material) (MaterialOffer, bool) {
	offer, ok := s.Offers[m]
	return offer, ok
}

// ScheduledDelivery is an informational demand target for a customer
type ScheduledDelivery struct {
	Day      int `json:"day" validate:"min=1"`
	Quantity int `json:"quantity" validate:"min=0"`
}

// Customer buys finished goods
type Customer struct {
	ID               string              `json:"id" validate:"required"`
	Name             string              `json:"name" validate:"required"`
	LeadTime         int                 `json:"leadTime" validate:"min=0"`
	PricePerUnit     float64             `json:"pricePerUnit" validate:"gte=0"`
	TransportTiers   []CostTier          `json:"transportTiers" validate:"dive"`
	TransportCost    float64             `json:"transportCost" validate:"gte=0"` // when no tier matches
	TotalRequirement int                 `json:"totalRequirement" validate:"min=0"` // 0 = unlimited
	MinimumDelivery  int                 `json:"minimumDelivery" validate:"min=0"`
	DeliverySchedule []ScheduledDelivery `json:"deliverySchedule" validate:"dive"`
}

// ScheduledThrough returns the cumulative scheduled quantity up to and including day
func (c Customer) ScheduledThrough(day int) int {
	total := 0
	for _, d := range c.DeliverySchedule {
		if d.Day <= day {
			total += d.Quantity
		}
	}
	return total
}

// DeliveryOption modifies supplier lead time and transport cost
type DeliveryOption struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	LeadTimeDelta  int     `json:"leadTimeDelta"`
	CostMultiplier float64 `json:"costMultiplier" validate:"gt=0"`
}

// StandardDelivery applies when an action names no delivery option
var StandardDelivery = DeliveryOption{ID: "standard", Name: "Standard", LeadTimeDelta: 0, CostMultiplier: 1}

// LeadTimeFor applies the option to a base lead time, never going below zero
func (o DeliveryOption) LeadTimeFor(base int) int {
	lt := base + o.LeadTimeDelta
	if lt < 0 {
		return 0
	}
	return lt
}

// OverstockRule charges PenaltyPerUnit for every unit held above Threshold
type OverstockRule struct {
	Threshold      int     `json:"threshold" validate:"min=0"`
	PenaltyPerUnit float64 `json:"penaltyPerUnit" validate:"gte=0"`
}

// Scoring bounds the terminal score
type Scoring struct {
	MaxScore     int     `json:"maxScore" validate:"min=1"`
	TargetProfit float64 `json:"targetProfit" validate:"gt=0"`
}

// Config is the immutable static definition of one level
type Config struct {
	ID                    shared.LevelID                        `json:"id"`
	Name                  string                                `json:"name" validate:"required"`
	Description           string                                `json:"description"`
	Suppliers             []Supplier                            `json:"suppliers" validate:"required,min=1,dive"`
	Customers             []Customer                            `json:"customers" validate:"required,min=1,dive"`
	DeliveryOptions       []DeliveryOption                      `json:"deliveryOptions" validate:"dive"`
	MaterialBasePrices    inventory.Amounts                     `json:"materialBasePrices" validate:"dive,gte=0"`
	HoldingCosts          inventory.Amounts                     `json:"holdingCosts" validate:"dive,gte=0"`
	Overstock             [inventory.Count]OverstockRule        `json:"overstock" validate:"dive"`
	SafetyStock           inventory.Quantities                  `json:"safetyStock" validate:"dive,min=0"`
	ProductionCostPerUnit float64                               `json:"productionCostPerUnit" validate:"gte=0"`
	Recipe                inventory.Quantities                  `json:"recipe" validate:"dive,min=0"`
	DaysToComplete        int                                   `json:"daysToComplete" validate:"min=1"`
	InitialCash           float64                               `json:"initialCash" validate:"gte=0"`
	InitialInventory      inventory.Quantities                  `json:"initialInventory" validate:"dive,min=0"`
	TierPolicy            TierPolicy                            `json:"tierPolicy" validate:"required,oneof=floor ceiling"`
	Scoring               Scoring                               `json:"scoring"`
	EndWhenInsolvent      bool                                  `json:"endWhenInsolvent"`
}

// DefaultRecipe is one burger meal: a patty, a bun, a slice of cheese and four potatoes
func DefaultRecipe() inventory.Quantities {
	return inventory.Quantities{}.
		With(inventory.Patty, 1).
		With(inventory.Bun, 1).
		With(inventory.Cheese, 1).
		With(inventory.Potato, 4)
}

// SupplierByID looks up a supplier
func (c *Config) SupplierByID(id string) (Supplier, bool) {
	for _, s := range c.Suppliers {
		if s.ID == id {
			return s, true
		}
	}
	return Supplier{}, false
}

// CustomerByID looks up a customer
func (c *Config) CustomerByID(id string) (Customer, bool) {
	for _, cu := range c.Customers {
		if cu.ID == id {
			return cu, true
		}
	}
	return Customer{}, false
}

// DeliveryOptionByID resolves an action's delivery option; the empty id means standard delivery
func (c *Config) DeliveryOptionByID(id string) (DeliveryOption, error) {
	if id == "" || id == StandardDelivery.ID {
		return StandardDelivery, nil
	}
	for _, o := range c.DeliveryOptions {
		if o.ID == id {
			return o, nil
		}
	}
	return DeliveryOption{}, shared.NewValidationError("action.deliveryOptionId", fmt.Sprintf("unknown delivery option %q", id))
}

// InitialStock returns the opening inventory valued at material base prices
func (c *Config) InitialStock() inventory.Stock {
	return inventory.NewStock(c.InitialInventory, c.MaterialBasePrices)
}
