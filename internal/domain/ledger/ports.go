package ledger

import (
	"context"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// CreateBatch persists a day's transactions atomically
	CreateBatch(ctx context.Context, transactions []*Transaction) error

	// FindBySession retrieves a user's transactions for one level
	FindBySession(ctx context.Context, key shared.SessionKey, opts QueryOptions) ([]*Transaction, error)

	// CountBySession counts matching transactions, ignoring pagination
	CountBySession(ctx context.Context, key shared.SessionKey, opts QueryOptions) (int, error)

	// DeleteBySession removes a session's transactions when the level is restarted
	DeleteBySession(ctx context.Context, key shared.SessionKey) error
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	// Inclusive day range; zero means unbounded
	FromDay int
	ToDay   int

	Category        *Category
	TransactionType *TransactionType

	Limit  int
	Offset int

	// "day ASC" (default) or "day DESC"
	OrderBy string
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   100,
		OrderBy: "day ASC",
	}
}
