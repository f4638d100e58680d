package inventory

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Material enumerates every stock-keeping unit the game tracks.
// The zero value is MaterialUnknown so an omitted material never parses as a real one;
// iterate with All or RawMaterials rather than ranging over ints.
type Material int

const (
	MaterialUnknown Material = iota
	Patty
	Bun
	Cheese
	Potato
	FinishedGoods

	// Count is the number of material kinds, used to size fixed tables
	Count = int(FinishedGoods) + 1
)

var materialNames = [Count]string{
	Patty:         "patty",
	Bun:           "bun",
	Cheese:        "cheese",
	Potato:        "potato",
	FinishedGoods: "finishedGoods",
}

// All returns every material kind, raw materials first.
func All() []Material {
	return []Material{Patty, Bun, Cheese, Potato, FinishedGoods}
}

// RawMaterials returns the kinds purchased from suppliers.
func RawMaterials() []Material {
	return []Material{Patty, Bun, Cheese, Potato}
}

// ParseMaterial parses the wire name of a material
func ParseMaterial(s string) (Material, error) {
	for _, m := range All() {
		if materialNames[m] == s {
			return m, nil
		}
	}
	return MaterialUnknown, shared.NewValidationError("material", fmt.Sprintf("unknown material %q", s))
}

func (m Material) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Material(%d)", int(m))
	}
	return materialNames[m]
}

func (m Material) IsValid() bool {
	return m > MaterialUnknown && int(m) < Count
}

func (m Material) IsRaw() bool {
	return m.IsValid() && m != FinishedGoods
}

// MarshalText encodes the material by name so it can be used as a JSON map key
func (m Material) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid material %d", int(m))
	}
	return []byte(materialNames[m]), nil
}

func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := ParseMaterial(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
