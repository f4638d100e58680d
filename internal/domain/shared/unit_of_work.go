package shared

import "context"

// UnitOfWork groups repository writes so they commit or roll back together.
// Repositories join the unit through the context handed to fn.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
