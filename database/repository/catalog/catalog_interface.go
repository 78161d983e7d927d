package catalogRepo

import (
	"context"

	"huduma/models"
)

// CatalogRepository defines data access for service listings.
//
// UpdateListing never touches the rating aggregate fields; those are owned by
// the review pipeline (reviewRepo.SaveWithRating).
type CatalogRepository interface {
	// Create inserts a new service listing.
	Create(ctx context.Context, svc *models.Service) error
	// GetByID retrieves a listing by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// UpdateListing modifies the provider-editable fields of a listing.
	UpdateListing(ctx context.Context, svc *models.Service) error
	// ListByProvider retrieves all listings owned by a provider.
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
}
