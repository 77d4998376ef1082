package lateplates

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Service is the admin queue of today's late plate requests
type Service interface {
	Load(ctx context.Context) error
	Snapshot() *Snapshot

	SetStatus(ctx context.Context, id int, status models.LatePlateStatus) error

	// PendingCount asks the server how many requests still need a decision
	PendingCount(ctx context.Context) (int, error)

	Close()
}
