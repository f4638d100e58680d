package level

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
)

var structValidator = validator.New()

// Validate checks field constraints and the cross-references between suppliers,
// customers and materials. Level definitions are static, so this runs once at load time.
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return formatValidationError(c.Name, err)
	}

	if c.Recipe.Get(inventory.FinishedGoods) != 0 {
		return fmt.Errorf("level %q: recipe cannot consume finished goods", c.Name)
	}
	rawUnits := 0
	for _, m := range inventory.RawMaterials() {
		rawUnits += c.Recipe.Get(m)
	}
	if rawUnits == 0 {
		return fmt.Errorf("level %q: recipe must consume at least one raw material", c.Name)
	}

	seen := make(map[string]bool)
	for _, s := range c.Suppliers {
		if seen[s.ID] {
			return fmt.Errorf("level %q: duplicate supplier id %q", c.Name, s.ID)
		}
		seen[s.ID] = true
		for m := range s.Offers {
			if !m.IsRaw() {
				return fmt.Errorf("level %q: supplier %q offers non-raw material %s", c.Name, s.ID, m)
			}
		}
	}

	seen = make(map[string]bool)
	for _, cu := range c.Customers {
		if seen[cu.ID] {
			return fmt.Errorf("level %q: duplicate customer id %q", c.Name, cu.ID)
		}
		seen[cu.ID] = true
	}

	seen = map[string]bool{StandardDelivery.ID: true}
	for _, o := range c.DeliveryOptions {
		if seen[o.ID] {
			return fmt.Errorf("level %q: duplicate or reserved delivery option id %q", c.Name, o.ID)
		}
		seen[o.ID] = true
	}

	return nil
}

func formatValidationError(levelName string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("level %q is invalid:\n  %s", levelName, strings.Join(messages, "\n  "))
}
