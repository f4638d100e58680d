package shared

import "math"

// CashTolerance is the largest negative balance treated as a rounding artifact.
const CashTolerance = 0.001

// RoundMoney rounds a currency amount to two decimal places.
func RoundMoney(amount float64) float64 {
	rounded := math.Round(amount*100) / 100
	if rounded == 0 {
		// normalise -0
		return 0
	}
	return rounded
}

// SnapCash clamps balances within CashTolerance of zero to exactly zero.
// The second return value is false when the balance is genuinely negative.
func SnapCash(balance float64) (float64, bool) {
	if balance >= 0 {
		return RoundMoney(balance), true
	}
	if balance > -CashTolerance {
		return 0, true
	}
	return balance, false
}
