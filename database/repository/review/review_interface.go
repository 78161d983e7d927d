package reviewRepo

import (
	"context"

	"huduma/models"
)

// ReviewRepository defines data access for reviews and the service rating
// aggregate they feed.
//
// SaveWithRating is the only writer of a service's (rating, review_count)
// pair. It persists the review and the recomputed aggregate as one atomic
// unit, guarded on the aggregate count the caller read (newCount - 1); a
// failed guard surfaces as repository.ErrConflict so the caller can re-read
// and retry.
type ReviewRepository interface {
	// SaveWithRating persists a review together with the service's new
	// rating aggregate.
	SaveWithRating(ctx context.Context, review *models.Review, newRating float64, newCount int) error
	// GetByOrderID retrieves the review placed for an order, if any.
	GetByOrderID(ctx context.Context, orderID string) (*models.Review, error)
	// ListByService retrieves all reviews for a service, newest first.
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
}
