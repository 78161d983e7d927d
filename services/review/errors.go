package review

import "errors"

var (
	// ErrInvalidRating means the rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrServiceNotFound means the reviewed service does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrAlreadyReviewed means the order already carries a review.
	ErrAlreadyReviewed = errors.New("order already reviewed")
	// ErrAggregationConflict means the rating fold kept losing to concurrent
	// writers and gave up. Callers should retry with backoff.
	ErrAggregationConflict = errors.New("rating aggregation conflict, retry")
)
