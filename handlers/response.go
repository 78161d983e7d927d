package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"huduma/services/catalog"
	"huduma/services/order"
	"huduma/services/payment"
	"huduma/services/review"
	"huduma/services/user"
	"huduma/utils"
)

// respondDomainError maps a service-layer error onto the HTTP surface in one
// place, so handlers cannot diverge on status codes.
func respondDomainError(c *gin.Context, err error) {
	var invalid *order.InvalidTransitionError

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrServiceNotFound),
		errors.Is(err, order.ErrCustomerNotFound),
		errors.Is(err, payment.ErrOrderNotFound),
		errors.Is(err, review.ErrServiceNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, catalog.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())

	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusConflict, "Invalid status transition", err.Error())

	case errors.Is(err, payment.ErrAlreadyPaid):
		utils.JSONError(c, http.StatusConflict, "Order already settled", err.Error())

	case errors.Is(err, payment.ErrAmountMismatch):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Amount mismatch", err.Error())

	case errors.Is(err, review.ErrAlreadyReviewed):
		utils.JSONError(c, http.StatusConflict, "Order already reviewed", err.Error())

	case errors.Is(err, review.ErrAggregationConflict):
		utils.JSONError(c, http.StatusConflict, "Rating update contention, please retry", err.Error())

	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, order.ErrProviderMismatch),
		errors.Is(err, payment.ErrInvalidRequest),
		errors.Is(err, user.ErrInvalidRole):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())

	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "Email already registered", err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
