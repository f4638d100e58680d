package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Quantities holds a unit count for every material kind.
// It is a value type: assignment copies, so states never share backing storage.
type Quantities [Count]int

// FromMap converts a wire-format inventory into Quantities.
// Missing materials default to zero and are returned so the caller can warn about them.
// Unknown names and negative counts are rejected.
func FromMap(raw map[string]int) (Quantities, []Material, error) {
	var q Quantities
	if raw == nil {
		return q, nil, shared.NewValidationError("inventory", "inventory is required")
	}

	seen := [Count]bool{}
	for name, qty := range raw {
		m, err := ParseMaterial(name)
		if err != nil {
			return Quantities{}, nil, shared.NewValidationError("inventory."+name, "unknown material")
		}
		if qty < 0 {
			return Quantities{}, nil, shared.NewValidationError("inventory."+name, fmt.Sprintf("quantity cannot be negative, got %d", qty))
		}
		q[m] = qty
		seen[m] = true
	}

	var missing []Material
	for _, m := range All() {
		if !seen[m] {
			missing = append(missing, m)
		}
	}
	return q, missing, nil
}

func (q Quantities) Get(m Material) int {
	return q[m]
}

// With returns a copy with m set to qty
func (q Quantities) With(m Material, qty int) Quantities {
	q[m] = qty
	return q
}

// Add returns a copy with delta added to m
func (q Quantities) Add(m Material, delta int) Quantities {
	q[m] += delta
	return q
}

// Total returns the sum across all materials
func (q Quantities) Total() int {
	total := 0
	for _, v := range q {
		total += v
	}
	return total
}

func (q Quantities) IsEmpty() bool {
	for _, v := range q {
		if v != 0 {
			return false
		}
	}
	return true
}

// FirstNegative returns the first material with a negative count, if any
func (q Quantities) FirstNegative() (Material, bool) {
	for _, m := range All() {
		if q[m] < 0 {
			return m, true
		}
	}
	return MaterialUnknown, false
}

func (q Quantities) ToMap() map[string]int {
	out := make(map[string]int, Count)
	for _, m := range All() {
		out[m.String()] = q[m]
	}
	return out
}

func (q Quantities) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.ToMap())
}

func (q *Quantities) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, _, err := FromMap(raw)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Amounts holds a currency amount (or rate) for every material kind
type Amounts [Count]float64

// AmountsFromMap converts a name-keyed map into Amounts; missing names are zero
func AmountsFromMap(raw map[string]float64) (Amounts, error) {
	var a Amounts
	for name, v := range raw {
		m, err := ParseMaterial(name)
		if err != nil {
			return Amounts{}, err
		}
		a[m] = v
	}
	return a, nil
}

func (a Amounts) Get(m Material) float64 {
	return a[m]
}

// Total returns the rounded sum across all materials
func (a Amounts) Total() float64 {
	total := 0.0
	for _, v := range a {
		total += v
	}
	return shared.RoundMoney(total)
}

func (a Amounts) ToMap() map[string]float64 {
	out := make(map[string]float64, Count)
	for _, m := range All() {
		out[m.String()] = a[m]
	}
	return out
}

func (a Amounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToMap())
}

func (a *Amounts) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AmountsFromMap(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
