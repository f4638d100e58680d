package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

// ValidationError reports a structurally invalid GameState or GameAction.
// Field names the offending input path (e.g. "inventory.patty", "action.customerOrders[1]").
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Affordability error

// CostBreakdown itemises the projected cost of one day's decisions.
type CostBreakdown struct {
	Purchases         float64 `json:"purchases"`
	Transport         float64 `json:"transport"`
	Production        float64 `json:"production"`
	Holding           float64 `json:"holding"`
	Overstock         float64 `json:"overstock"`
	CustomerTransport float64 `json:"customerTransport"`
	Total             float64 `json:"total"`
}

// Dominant returns the name of the largest cost component.
// Ties resolve in declaration order.
func (b CostBreakdown) Dominant() string {
	components := []struct {
		name  string
		value float64
	}{
		{"purchases", b.Purchases},
		{"transport", b.Transport},
		{"production", b.Production},
		{"holding", b.Holding},
		{"overstock", b.Overstock},
		{"customerTransport", b.CustomerTransport},
	}

	best := components[0]
	for _, c := range components[1:] {
		if c.value > best.value {
			best = c
		}
	}
	if best.value <= 0 {
		return ""
	}
	return best.name
}

// AffordabilityError reports that a day's decisions cost more than the available cash.
type AffordabilityError struct {
	*DomainError
	TotalCost     float64
	HoldingCost   float64
	AvailableCash float64
	Shortfall     float64
	Breakdown     CostBreakdown
}

func NewAffordabilityError(breakdown CostBreakdown, availableCash float64) *AffordabilityError {
	shortfall := RoundMoney(breakdown.Total - availableCash)
	message := fmt.Sprintf("insufficient funds: total cost %.2f exceeds available cash %.2f (short by %.2f)",
		breakdown.Total, availableCash, shortfall)
	if dominant := breakdown.Dominant(); dominant != "" {
		message = fmt.Sprintf("%s; largest component is %s", message, dominant)
	}

	return &AffordabilityError{
		DomainError:   &DomainError{Message: message},
		TotalCost:     breakdown.Total,
		HoldingCost:   breakdown.Holding,
		AvailableCash: availableCash,
		Shortfall:     shortfall,
		Breakdown:     breakdown,
	}
}

// Processing error

// ProcessingError reports that completing a day would violate an engine invariant.
// The caller's state is guaranteed untouched when this is returned.
type ProcessingError struct {
	*DomainError
	Details string
}

func NewProcessingError(message, details string) *ProcessingError {
	return &ProcessingError{
		DomainError: &DomainError{Message: message},
		Details:     details,
	}
}

// Session errors

// ConflictError reports a day transition attempted from a stale session state.
type ConflictError struct {
	*DomainError
	PersistedDay int
	RequestedDay int
}

func NewConflictError(persistedDay, requestedDay int) *ConflictError {
	return &ConflictError{
		DomainError: &DomainError{Message: fmt.Sprintf(
			"stale game state: session is on day %d but request was built from day %d",
			persistedDay, requestedDay)},
		PersistedDay: persistedDay,
		RequestedDay: requestedDay,
	}
}

// NotFoundError reports a missing session, level or performance record.
type NotFoundError struct {
	*DomainError
	Resource string
	Key      string
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s not found: %s", resource, key)},
		Resource:    resource,
		Key:         key,
	}
}

// IsClientError reports whether err should be surfaced to the caller as a request problem
// (validation or affordability) rather than an internal failure.
func IsClientError(err error) bool {
	var validationErr *ValidationError
	var affordabilityErr *AffordabilityError
	return errors.As(err, &validationErr) || errors.As(err, &affordabilityErr)
}
