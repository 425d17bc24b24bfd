package teamseason

import "context"

// Repository exposes the team season table as a join index.
type Repository interface {
	Index(ctx context.Context) (Lookup, error)
}
