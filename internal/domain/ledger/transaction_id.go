package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a ledger transaction
type TransactionID struct {
	value string
}

// NewTransactionID generates a random (v4) identifier
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.NewString()}
}

// ParseTransactionID validates a stored or user-supplied identifier
func ParseTransactionID(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, fmt.Errorf("transaction id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id %q: %w", id, err)
	}
	return TransactionID{value: parsed.String()}, nil
}

// MustParseTransactionID panics on malformed ids; use only for ids read back from the database
func MustParseTransactionID(id string) TransactionID {
	tid, err := ParseTransactionID(id)
	if err != nil {
		panic(err)
	}
	return tid
}

func (t TransactionID) String() string {
	return t.value
}

func (t TransactionID) IsZero() bool {
	return t.value == ""
}
