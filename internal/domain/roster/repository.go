package roster

import "context"

// Repository persists the current schedule as a whole.
type Repository interface {
	// Replace discards any stored schedule and stores s in its place.
	Replace(ctx context.Context, s Schedule) error
	// Load returns the stored schedule, or an empty one when nothing has been stored.
	Load(ctx context.Context) (Schedule, error)
}
