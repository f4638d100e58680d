package levels

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// definition is the YAML shape of a level file. Materials are keyed by name.
type definition struct {
	ID                    int                           `yaml:"id"`
	Name                  string                        `yaml:"name"`
	Description           string                        `yaml:"description"`
	DaysToComplete        int                           `yaml:"daysToComplete"`
	InitialCash           float64                       `yaml:"initialCash"`
	TierPolicy            string                        `yaml:"tierPolicy"`
	ProductionCostPerUnit float64                       `yaml:"productionCostPerUnit"`
	EndWhenInsolvent      bool                          `yaml:"endWhenInsolvent"`
	Scoring               scoringDefinition             `yaml:"scoring"`
	Recipe                map[string]int                `yaml:"recipe"`
	MaterialBasePrices    map[string]float64            `yaml:"materialBasePrices"`
	HoldingCosts          map[string]float64            `yaml:"holdingCosts"`
	SafetyStock           map[string]int                `yaml:"safetyStock"`
	Overstock             map[string]overstockDefinition `yaml:"overstock"`
	InitialInventory      map[string]int                `yaml:"initialInventory"`
	Suppliers             []supplierDefinition          `yaml:"suppliers"`
	Customers             []customerDefinition          `yaml:"customers"`
	DeliveryOptions       []deliveryOptionDefinition    `yaml:"deliveryOptions"`
}

type scoringDefinition struct {
	MaxScore     int     `yaml:"maxScore"`
	TargetProfit float64 `yaml:"targetProfit"`
}

type overstockDefinition struct {
	Threshold      int     `yaml:"threshold"`
	PenaltyPerUnit float64 `yaml:"penaltyPerUnit"`
}

type tierDefinition struct {
	MinQuantity int     `yaml:"minQuantity"`
	UnitPrice   float64 `yaml:"unitPrice"`
	Cost        float64 `yaml:"cost"`
}

type offerDefinition struct {
	BasePrice  float64          `yaml:"basePrice"`
	Capacity   int              `yaml:"capacity"`
	PriceTiers []tierDefinition `yaml:"priceTiers"`
}

type supplierDefinition struct {
	ID             string                     `yaml:"id"`
	Name           string                     `yaml:"name"`
	LeadTime       int                        `yaml:"leadTime"`
	TransportCost  float64                    `yaml:"transportCost"`
	TransportTiers []tierDefinition           `yaml:"transportTiers"`
	Offers         map[string]offerDefinition `yaml:"offers"`
}

type scheduleDefinition struct {
	Day      int `yaml:"day"`
	Quantity int `yaml:"quantity"`
}

type customerDefinition struct {
	ID               string               `yaml:"id"`
	Name             string               `yaml:"name"`
	LeadTime         int                  `yaml:"leadTime"`
	PricePerUnit     float64              `yaml:"pricePerUnit"`
	TransportCost    float64              `yaml:"transportCost"`
	TransportTiers   []tierDefinition     `yaml:"transportTiers"`
	TotalRequirement int                  `yaml:"totalRequirement"`
	MinimumDelivery  int                  `yaml:"minimumDelivery"`
	DeliverySchedule []scheduleDefinition `yaml:"deliverySchedule"`
}

type deliveryOptionDefinition struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	LeadTimeDelta  int     `yaml:"leadTimeDelta"`
	CostMultiplier float64 `yaml:"costMultiplier"`
}

// ParseDefinition decodes and validates one level file
func ParseDefinition(data []byte) (*level.Config, error) {
	var def definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode level definition: %w", err)
	}

	cfg, err := def.toConfig()
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", def.Name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d definition) toConfig() (*level.Config, error) {
	id, err := shared.NewLevelID(d.ID)
	if err != nil {
		return nil, err
	}

	cfg := &level.Config{
		ID:                    id,
		Name:                  d.Name,
		Description:           d.Description,
		DaysToComplete:        d.DaysToComplete,
		InitialCash:           d.InitialCash,
		TierPolicy:            level.TierPolicy(d.TierPolicy),
		ProductionCostPerUnit: d.ProductionCostPerUnit,
		EndWhenInsolvent:      d.EndWhenInsolvent,
		Scoring:               level.Scoring{MaxScore: d.Scoring.MaxScore, TargetProfit: d.Scoring.TargetProfit},
	}
	if cfg.TierPolicy == "" {
		cfg.TierPolicy = level.TierPolicyFloor
	}

	if d.Recipe == nil {
		cfg.Recipe = level.DefaultRecipe()
	} else if cfg.Recipe, err = quantities("recipe", d.Recipe); err != nil {
		return nil, err
	}
	if cfg.SafetyStock, err = quantities("safetyStock", d.SafetyStock); err != nil {
		return nil, err
	}
	if cfg.InitialInventory, err = quantities("initialInventory", d.InitialInventory); err != nil {
		return nil, err
	}
	if cfg.MaterialBasePrices, err = inventory.AmountsFromMap(d.MaterialBasePrices); err != nil {
		return nil, fmt.Errorf("materialBasePrices: %w", err)
	}
	if cfg.HoldingCosts, err = inventory.AmountsFromMap(d.HoldingCosts); err != nil {
		return nil, fmt.Errorf("holdingCosts: %w", err)
	}
	for name, rule := range d.Overstock {
		m, err := inventory.ParseMaterial(name)
		if err != nil {
			return nil, fmt.Errorf("overstock: %w", err)
		}
		cfg.Overstock[m] = level.OverstockRule{Threshold: rule.Threshold, PenaltyPerUnit: rule.PenaltyPerUnit}
	}

	for _, s := range d.Suppliers {
		supplier := level.Supplier{
			ID:             s.ID,
			Name:           s.Name,
			LeadTime:       s.LeadTime,
			TransportCost:  s.TransportCost,
			TransportTiers: costTiers(s.TransportTiers),
			Offers:         make(map[inventory.Material]level.MaterialOffer, len(s.Offers)),
		}
		for name, o := range s.Offers {
			m, err := inventory.ParseMaterial(name)
			if err != nil {
				return nil, fmt.Errorf("supplier %q: %w", s.ID, err)
			}
			supplier.Offers[m] = level.MaterialOffer{
				BasePrice:  o.BasePrice,
				Capacity:   o.Capacity,
				PriceTiers: priceTiers(o.PriceTiers),
			}
		}
		cfg.Suppliers = append(cfg.Suppliers, supplier)
	}

	for _, c := range d.Customers {
		customer := level.Customer{
			ID:               c.ID,
			Name:             c.Name,
			LeadTime:         c.LeadTime,
			PricePerUnit:     c.PricePerUnit,
			TransportCost:    c.TransportCost,
			TransportTiers:   costTiers(c.TransportTiers),
			TotalRequirement: c.TotalRequirement,
			MinimumDelivery:  c.MinimumDelivery,
		}
		for _, s := range c.DeliverySchedule {
			customer.DeliverySchedule = append(customer.DeliverySchedule, level.ScheduledDelivery{Day: s.Day, Quantity: s.Quantity})
		}
		cfg.Customers = append(cfg.Customers, customer)
	}

	for _, o := range d.DeliveryOptions {
		cfg.DeliveryOptions = append(cfg.DeliveryOptions, level.DeliveryOption{
			ID:             o.ID,
			Name:           o.Name,
			LeadTimeDelta:  o.LeadTimeDelta,
			CostMultiplier: o.CostMultiplier,
		})
	}

	return cfg, nil
}

// quantities tolerates missing materials (they default to zero) but not unknown ones
func quantities(field string, raw map[string]int) (inventory.Quantities, error) {
	var q inventory.Quantities
	for name, qty := range raw {
		m, err := inventory.ParseMaterial(name)
		if err != nil {
			return q, fmt.Errorf("%s: %w", field, err)
		}
		if qty < 0 {
			return q, fmt.Errorf("%s.%s: quantity cannot be negative", field, name)
		}
		q[m] = qty
	}
	return q, nil
}

func priceTiers(defs []tierDefinition) []level.PriceTier {
	tiers := make([]level.PriceTier, 0, len(defs))
	for _, t := range defs {
		tiers = append(tiers, level.PriceTier{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice})
	}
	return tiers
}

func costTiers(defs []tierDefinition) []level.CostTier {
	tiers := make([]level.CostTier, 0, len(defs))
	for _, t := range defs {
		tiers = append(tiers, level.CostTier{MinQuantity: t.MinQuantity, Cost: t.Cost})
	}
	return tiers
}
