package members

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Service is the admin member roster
type Service interface {
	Load(ctx context.Context) error
	Snapshot() *Snapshot

	SetRole(ctx context.Context, userID int, role models.Role) error

	// Remove deletes a member from the chapter
	Remove(ctx context.Context, userID int) error

	Close()
}
