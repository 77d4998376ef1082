package recommendation

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// Service handles dish suggestions from members
type Service interface {
	// Submit sends a suggestion; any logged in member may
	Submit(ctx context.Context, input *SubmitInput) error

	// List returns every suggestion. Staff only.
	List(ctx context.Context) ([]models.Recommendation, error)

	Delete(ctx context.Context, id int) error
}
