package analytics

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

// Service is the admin analytics dashboard
type Service interface {
	Load(ctx context.Context) error
	Snapshot() resource.Snapshot[*models.Analytics]
	Close()
}
