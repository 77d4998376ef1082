package moderation

import "context"

// Service is the owner's review moderation queue
type Service interface {
	Load(ctx context.Context) error
	Snapshot() *Snapshot

	// ToggleHidden hides a visible review or restores a hidden one
	ToggleHidden(ctx context.Context, reviewID int) error

	Delete(ctx context.Context, reviewID int) error
	Close()
}
