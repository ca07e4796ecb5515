package analyses

import "context"

// Repo persists analysis records. Rows are insert-only; there is no update
// or delete.
type Repo interface {
	Insert(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
}
