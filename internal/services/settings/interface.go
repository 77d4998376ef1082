package settings

import "context"

// Service is the chapter settings page
type Service interface {
	Load(ctx context.Context) error
	Snapshot() *Snapshot

	// UpdateChapterName renames the chapter
	UpdateChapterName(ctx context.Context, name string) error

	// RegenerateAccessCode replaces the registration code. Owners only.
	RegenerateAccessCode(ctx context.Context) (string, error)

	// ToggleReveal shows or masks the access code
	ToggleReveal() bool

	Close()
}
