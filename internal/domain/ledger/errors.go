package ledger

import "fmt"

// ErrInvalidTransaction represents validation errors for transactions
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s - %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation is returned when balance_after != balance_before + amount
type ErrBalanceInvariantViolation struct {
	BalanceBefore float64
	Amount        float64
	BalanceAfter  float64
	Expected      float64
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("balance invariant violated: balance_before=%.2f + amount=%.2f should equal %.2f, but balance_after=%.2f",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}
