package inventory

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Stock pairs on-hand quantities with their moving-average valuation.
// All methods return a new Stock; the receiver is never modified.
type Stock struct {
	Quantities Quantities `json:"inventory"`
	Value      Amounts    `json:"inventoryValue"`
}

// NewStock values an opening inventory at the given unit prices
func NewStock(quantities Quantities, unitPrices Amounts) Stock {
	var value Amounts
	for _, m := range All() {
		value[m] = shared.RoundMoney(float64(quantities[m]) * unitPrices[m])
	}
	return Stock{Quantities: quantities, Value: value}
}

// AverageCost returns the current valuation per unit of m (zero when out of stock)
func (s Stock) AverageCost(m Material) float64 {
	if s.Quantities[m] <= 0 {
		return 0
	}
	return s.Value[m] / float64(s.Quantities[m])
}

// Receive adds qty units of m bought for cost
func (s Stock) Receive(m Material, qty int, cost float64) Stock {
	s.Quantities[m] += qty
	s.Value[m] = shared.RoundMoney(s.Value[m] + cost)
	return s
}

// Remove takes qty units of m out of stock at average cost.
// It returns the new stock and the value removed.
func (s Stock) Remove(m Material, qty int) (Stock, float64, error) {
	if qty < 0 {
		return s, 0, fmt.Errorf("cannot remove negative quantity %d of %s", qty, m)
	}
	if qty > s.Quantities[m] {
		return s, 0, shared.NewValidationError(m.String(),
			fmt.Sprintf("insufficient %s: need %d, have %d", m, qty, s.Quantities[m]))
	}
	if qty == 0 {
		return s, 0, nil
	}

	var removed float64
	if qty == s.Quantities[m] {
		removed = s.Value[m]
	} else {
		removed = shared.RoundMoney(s.AverageCost(m) * float64(qty))
	}

	s.Quantities[m] -= qty
	s.Value[m] = shared.RoundMoney(s.Value[m] - removed)
	return s, removed, nil
}

// Produce converts raw materials into finished goods according to recipe.
// The finished goods are valued at the consumed material value plus conversionCost.
func (s Stock) Produce(units int, recipe Quantities, conversionCost float64) (Stock, error) {
	if units == 0 {
		return s, nil
	}

	for _, m := range RawMaterials() {
		need := recipe[m] * units
		if need > s.Quantities[m] {
			return s, shared.NewValidationError("action.production",
				fmt.Sprintf("insufficient %s to produce %d units: need %d, have %d", m, units, need, s.Quantities[m]))
		}
	}

	next := s
	consumed := 0.0
	for _, m := range RawMaterials() {
		var removed float64
		var err error
		next, removed, err = next.Remove(m, recipe[m]*units)
		if err != nil {
			return s, err
		}
		consumed += removed
	}

	return next.Receive(FinishedGoods, units, consumed+conversionCost), nil
}
