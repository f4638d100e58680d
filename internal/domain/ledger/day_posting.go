package ledger

import (
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// Posting is one signed cash movement to be written to the ledger
type Posting struct {
	Type        TransactionType
	Amount      float64
	Description string
}

// PostDay chains postings into transactions, each starting from the previous closing balance
func PostDay(
	key shared.SessionKey,
	day int,
	timestamp time.Time,
	openingBalance float64,
	postings []Posting,
) ([]*Transaction, error) {
	transactions := make([]*Transaction, 0, len(postings))
	balance := shared.RoundMoney(openingBalance)

	for _, p := range postings {
		after := shared.RoundMoney(balance + p.Amount)
		tx, err := NewTransaction(key.UserID, key.LevelID, day, timestamp, p.Type, p.Amount, balance, after, p.Description, nil)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
		balance = after
	}
	return transactions, nil
}
