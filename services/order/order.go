package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"huduma/database/repository"
	catalogRepo "huduma/database/repository/catalog"
	orderRepo "huduma/database/repository/order"
	userRepo "huduma/database/repository/user"
	"huduma/models"
)

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Orders   orderRepo.OrderRepository
	Catalog  catalogRepo.CatalogRepository
	Users    userRepo.UserRepository
	Reminder ReminderScheduler // optional
	Logger   *zap.Logger
}

// CreateOrder resolves the service listing and the customer profile, freezes
// them into snapshots and persists a new pending order. This is the only
// point at which snapshot fields and TotalPrice are populated; later edits to
// the listing or the profile never reach the order.
func (s *DefaultOrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	svc, err := s.Catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("resolve service: %w", err)
	}
	if req.ProviderID != "" && req.ProviderID != svc.ProviderID {
		return nil, ErrProviderMismatch
	}

	customer, err := s.Users.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	o := &models.Order{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		ProviderID: svc.ProviderID,
		ServiceID:  svc.ID,
		Service: models.ServiceSnapshot{
			Title:        svc.Title,
			Price:        svc.Price,
			Category:     svc.Category,
			ThumbnailURL: svc.ThumbnailURL,
		},
		Customer: models.CustomerSnapshot{
			DisplayName: customer.DisplayName,
			PhoneNumber: customer.PhoneNumber,
			Address:     customer.Address,
		},
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Notes:       req.Notes,
		TotalPrice:  svc.Price,
		Status:      models.OrderPending,
		CreatedAt:   time.Now(),
	}

	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if s.Reminder != nil {
		if err := s.Reminder.ScheduleBookingReminder(ctx, o); err != nil {
			s.logger().Warn("failed to schedule booking reminder",
				zap.String("orderId", o.ID), zap.Error(err))
		}
	}

	return o, nil
}

// GetOrder retrieves an order by id.
func (s *DefaultOrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	return o, nil
}

// ListOrders returns the orders a user is party to, newest first, optionally
// filtered to a status subset.
func (s *DefaultOrderService) ListOrders(ctx context.Context, userID string, role models.Role, statuses []models.OrderStatus) ([]models.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, userID, role, statuses)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus validates the requested edge against the transition table
// and the actor's role and identity, then applies it guarded on the current
// status. A concurrent writer that moves the order first makes the guarded
// update miss; the request is then re-validated against the fresh status.
func (s *DefaultOrderService) UpdateOrderStatus(ctx context.Context, orderID string, target models.OrderStatus, actor Actor) (*models.Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, target) {
		return nil, &InvalidTransitionError{From: o.Status, To: target}
	}
	if !RoleAllowed(o.Status, target, actor.Role) {
		return nil, ErrForbidden
	}
	if !actorIsParty(o, actor) {
		return nil, ErrForbidden
	}

	if err := s.Orders.UpdateStatus(ctx, orderID, o.Status, target); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, repository.ErrConflict):
			fresh, ferr := s.GetOrder(ctx, orderID)
			if ferr != nil {
				return nil, ferr
			}
			return nil, &InvalidTransitionError{From: fresh.Status, To: target}
		default:
			return nil, fmt.Errorf("update status: %w", err)
		}
	}

	o.Status = target
	return o, nil
}

// actorIsParty checks the actor is the order's own customer or provider.
func actorIsParty(o *models.Order, actor Actor) bool {
	switch actor.Role {
	case models.RoleCustomer:
		return actor.UserID == o.CustomerID
	case models.RoleProvider:
		return actor.UserID == o.ProviderID
	default:
		return false
	}
}

func (s *DefaultOrderService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
