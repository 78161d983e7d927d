package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"huduma/database/repository"
	catalogRepo "huduma/database/repository/catalog"
	reviewRepo "huduma/database/repository/review"
	"huduma/models"
)

// foldAttempts bounds the optimistic retries of the rating fold before the
// conflict is surfaced to the caller.
const foldAttempts = 3

// AddReviewRequest carries the inputs for submitting a review.
type AddReviewRequest struct {
	CustomerID   string
	CustomerName string
	ServiceID    string
	ProviderID   string
	OrderID      string
	Rating       int
	Comment      string
}

// ReviewService records reviews and maintains each service's running rating.
type ReviewService interface {
	AddReview(ctx context.Context, req AddReviewRequest) (*models.Review, error)
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews reviewRepo.ReviewRepository
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}

// AddReview validates the rating, then folds it into the service's running
// average: read the current (rating, review_count), recompute, and persist
// the review plus the new aggregate as one atomic unit. A concurrent fold
// that commits first invalidates the read; the computation is retried from a
// fresh read a bounded number of times before ErrAggregationConflict is
// returned. One review per order is enforced.
func (s *DefaultReviewService) AddReview(ctx context.Context, req AddReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.Reviews.GetByOrderID(ctx, req.OrderID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check prior review: %w", err)
	}

	for attempt := 0; attempt < foldAttempts; attempt++ {
		svc, err := s.Catalog.GetByID(ctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("resolve service: %w", err)
		}

		newCount := svc.ReviewCount + 1
		newRating := round1((svc.Rating*float64(svc.ReviewCount) + float64(req.Rating)) / float64(newCount))

		rev := &models.Review{
			ID:           uuid.New().String(),
			OrderID:      req.OrderID,
			ServiceID:    req.ServiceID,
			ProviderID:   req.ProviderID,
			CustomerID:   req.CustomerID,
			CustomerName: req.CustomerName,
			Rating:       req.Rating,
			Comment:      req.Comment,
			CreatedAt:    time.Now(),
		}

		err = s.Reviews.SaveWithRating(ctx, rev, newRating, newCount)
		switch {
		case err == nil:
			return rev, nil
		case errors.Is(err, repository.ErrConflict):
			s.logger().Debug("rating fold lost to concurrent writer, retrying",
				zap.String("serviceId", req.ServiceID), zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyReviewed
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrServiceNotFound
		default:
			return nil, fmt.Errorf("persist review: %w", err)
		}
	}

	return nil, ErrAggregationConflict
}

// ListByService returns all reviews for a service, newest first.
func (s *DefaultReviewService) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func (s *DefaultReviewService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
