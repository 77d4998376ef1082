package attendance

import (
	"context"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

// Service is the admin attendance log
type Service interface {
	// List fetches the attendance log
	List(ctx context.Context) error
	Snapshot() resource.Snapshot[[]models.AttendanceRecord]

	// Details breaks one meal down into who is and is not eating
	Details(ctx context.Context, mealID int) (*models.AttendanceDetails, error)

	Close()
}
