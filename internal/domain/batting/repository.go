package batting

import "context"

// Repository describes batting appearance lookups needed by use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Appearance, error)
}
