package reviews

import "context"

// Service is the recent reviews feed
type Service interface {
	// Load fetches the menu and then the reviews of its first meals. A meal
	// whose reviews fail to load is skipped.
	Load(ctx context.Context) error

	Snapshot() *Snapshot

	Close()
}
