package presets

import "context"

// Service is the weekly defaults view
type Service interface {
	Load(ctx context.Context) error

	Snapshot() *Snapshot

	// Save creates a preset when ID is zero and updates it otherwise
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	Delete(ctx context.Context, input *DeleteInput) error

	// Apply asks the server to apply the presets to the current week
	Apply(ctx context.Context) (*ApplyOutput, error)

	Close()
}
