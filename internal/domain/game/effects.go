package game

import (
	"strconv"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// CashMovementKind classifies one cash movement of a processed day
type CashMovementKind string

const (
	CashMovementSalesRevenue      CashMovementKind = "SALES_REVENUE"
	CashMovementMaterialPurchase  CashMovementKind = "MATERIAL_PURCHASE"
	CashMovementSupplierTransport CashMovementKind = "SUPPLIER_TRANSPORT"
	CashMovementProduction        CashMovementKind = "PRODUCTION"
	CashMovementHolding           CashMovementKind = "HOLDING"
	CashMovementOverstock         CashMovementKind = "OVERSTOCK"
	CashMovementWriteOff          CashMovementKind = "UNCOVERED_COST_WRITE_OFF"
)

// CashMovement is a signed change to cash; credits are positive
type CashMovement struct {
	Kind        CashMovementKind
	Amount      float64
	Description string
}

// Effects lists what the caller must persist after a day has been processed.
// The engine itself performs no I/O.
type Effects struct {
	// SaveSession upserts the new state keyed by (user, level)
	SaveSession bool

	// RecordPerformance stores the final GameResult; set only on game over
	RecordPerformance bool

	// CashMovements in application order, starting from OpeningCash
	OpeningCash   float64
	CashMovements []CashMovement
}

// ClosingCash replays the movements from the opening balance
func (e Effects) ClosingCash() float64 {
	balance := e.OpeningCash
	for _, m := range e.CashMovements {
		balance = shared.RoundMoney(balance + m.Amount)
	}
	return balance
}

func cashMovementsFor(result DailyResult, revenue float64) []CashMovement {
	movements := []CashMovement{}
	add := func(kind CashMovementKind, amount float64, description string) {
		if amount == 0 {
			return
		}
		movements = append(movements, CashMovement{Kind: kind, Amount: shared.RoundMoney(amount), Description: description})
	}

	add(CashMovementSalesRevenue, revenue, "net revenue from deliveries completed on day "+strconv.Itoa(result.Day))
	add(CashMovementMaterialPurchase, -result.Costs.Purchases, "raw material purchases")
	add(CashMovementSupplierTransport, -result.Costs.Transport, "supplier shipments")
	add(CashMovementProduction, -result.Costs.Production, "production of "+strconv.Itoa(result.Production)+" units")
	add(CashMovementHolding, -result.Costs.Holding, "end of day holding cost")
	add(CashMovementOverstock, -result.Costs.Overstock, "overstock penalty")
	add(CashMovementWriteOff, result.UncoveredCost, "costs not covered at zero cash")
	return movements
}
