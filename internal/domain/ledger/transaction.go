package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Transaction is one immutable cash movement of a game session.
// Amount is positive for income and negative for expenses.
type Transaction struct {
	id              TransactionID
	userID          shared.UserID
	levelID         shared.LevelID
	day             int
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	amount          float64
	balanceBefore   float64
	balanceAfter    float64
	description     string
	metadata        map[string]interface{}
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	userID shared.UserID,
	levelID shared.LevelID,
	day int,
	timestamp time.Time,
	transactionType TransactionType,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
	metadata map[string]interface{},
) (*Transaction, error) {
	if userID.IsZero() {
		return nil, &ErrInvalidTransaction{Field: "user_id", Reason: "user_id cannot be empty"}
	}
	if day < 1 {
		return nil, &ErrInvalidTransaction{Field: "day", Reason: fmt.Sprintf("day must be at least 1, got %d", day)}
	}
	if !transactionType.IsValid() {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: fmt.Sprintf("invalid transaction type: %s", transactionType),
		}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "category", Reason: err.Error()}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		userID:          userID,
		levelID:         levelID,
		day:             day,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          shared.RoundMoney(amount),
		balanceBefore:   shared.RoundMoney(balanceBefore),
		balanceAfter:    shared.RoundMoney(balanceAfter),
		description:     description,
		metadata:        metadata,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(
	id TransactionID,
	userID shared.UserID,
	levelID shared.LevelID,
	day int,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
	metadata map[string]interface{},
) *Transaction {
	return &Transaction{
		id:              id,
		userID:          userID,
		levelID:         levelID,
		day:             day,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		metadata:        metadata,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "amount cannot be zero"}
	}

	// balance_after must equal balance_before + amount, to the cent
	expected := shared.RoundMoney(t.balanceBefore + t.amount)
	if math.Abs(t.balanceAfter-expected) >= 0.005 {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	// Allow one minute of clock skew
	if t.timestamp.After(time.Now().Add(1 * time.Minute)) {
		return &ErrInvalidTransaction{
			Field:  "timestamp",
			Reason: fmt.Sprintf("timestamp cannot be in the future: %s", t.timestamp),
		}
	}

	return nil
}

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) UserID() shared.UserID {
	return t.userID
}

func (t *Transaction) LevelID() shared.LevelID {
	return t.levelID
}

func (t *Transaction) Day() int {
	return t.day
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) Amount() float64 {
	return t.amount
}

func (t *Transaction) BalanceBefore() float64 {
	return t.balanceBefore
}

func (t *Transaction) BalanceAfter() float64 {
	return t.balanceAfter
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) Metadata() map[string]interface{} {
	// Return a copy to prevent external modification
	if t.metadata == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		copied[k] = v
	}
	return copied
}

// IsIncome returns true if the transaction brought cash in
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

// IsExpense returns true if the transaction took cash out
func (t *Transaction) IsExpense() bool {
	return t.amount < 0
}

// AffectsProfit reports whether the transaction belongs in a profit and loss statement
func (t *Transaction) AffectsProfit() bool {
	return t.category != CategoryAdjustments
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, day=%d, type=%s, amount=%.2f, balance=%.2f->%.2f]",
		t.id.String(), t.day, t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
