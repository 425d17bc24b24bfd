package player

import "context"

// Repository describes player record lookups needed by use cases.
type Repository interface {
	ListActive(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
