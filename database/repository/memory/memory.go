// Package memory provides an in-memory implementation of every repository
// interface, honoring the same error and atomicity contract as the Mongo
// implementations. One mutex per store serializes the read-modify-write
// operations, which is the harness the service-layer tests run against.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"huduma/database/repository"
	catalogRepo "huduma/database/repository/catalog"
	orderRepo "huduma/database/repository/order"
	reviewRepo "huduma/database/repository/review"
	userRepo "huduma/database/repository/user"
	"huduma/models"
)

// Store holds all collections behind a single mutex.
type Store struct {
	mu            sync.Mutex
	users         map[string]models.User
	usersByEmail  map[string]string
	services      map[string]models.Service
	orders        map[string]models.Order
	transactions  map[string][]models.Transaction // keyed by order id
	reviews       map[string]models.Review
	reviewByOrder map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]models.User),
		usersByEmail:  make(map[string]string),
		services:      make(map[string]models.Service),
		orders:        make(map[string]models.Order),
		transactions:  make(map[string][]models.Transaction),
		reviews:       make(map[string]models.Review),
		reviewByOrder: make(map[string]string),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() userRepo.UserRepository { return &userStore{s} }

// Catalog returns the catalog repository view of the store.
func (s *Store) Catalog() catalogRepo.CatalogRepository { return &catalogStore{s} }

// Orders returns the order repository view of the store.
func (s *Store) Orders() orderRepo.OrderRepository { return &orderStore{s} }

// Reviews returns the review repository view of the store.
func (s *Store) Reviews() reviewRepo.ReviewRepository { return &reviewStore{s} }

// --- users ---

type userStore struct{ s *Store }

func (r *userStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.s.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	r.s.usersByEmail[user.Email] = user.ID
	return nil
}

func (r *userStore) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	r.s.usersByEmail[user.Email] = user.ID
	return nil
}

func (r *userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

// --- catalog ---

type catalogStore struct{ s *Store }

func (r *catalogStore) Create(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[svc.ID]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *catalogStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

func (r *catalogStore) UpdateListing(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.services[svc.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = svc.Title
	stored.Description = svc.Description
	stored.Price = svc.Price
	stored.Category = svc.Category
	stored.ThumbnailURL = svc.ThumbnailURL
	stored.UpdatedAt = time.Now()
	r.s.services[svc.ID] = stored
	return nil
}

func (r *catalogStore) ListByProvider(_ context.Context, providerID string) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Service
	for _, svc := range r.s.services {
		if svc.ProviderID == providerID {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- orders ---

type orderStore struct{ s *Store }

func (r *orderStore) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.orders[order.ID] = *order
	return nil
}

func (r *orderStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *orderStore) ListByUser(_ context.Context, userID string, role models.Role, statuses []models.OrderStatus) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[models.OrderStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	var out []models.Order
	for _, o := range r.s.orders {
		party := o.CustomerID
		if role == models.RoleProvider {
			party = o.ProviderID
		}
		if party != userID {
			continue
		}
		if len(wanted) > 0 && !wanted[o.Status] {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderStore) UpdateStatus(_ context.Context, orderID string, from, to models.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	if o.Status != from {
		return repository.ErrConflict
	}
	o.Status = to
	r.s.orders[orderID] = o
	return nil
}

// SettlePayment applies the order transition and the transaction insert under
// one critical section, mirroring the Mongo multi-document transaction.
func (r *orderStore) SettlePayment(_ context.Context, orderID string, txn *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	if o.Status != models.OrderPending {
		return repository.ErrConflict
	}
	o.Status = models.OrderConfirmed
	o.PaymentReceived = true
	r.s.orders[orderID] = o
	r.s.transactions[orderID] = append(r.s.transactions[orderID], *txn)
	return nil
}

func (r *orderStore) ListTransactions(_ context.Context, orderID string) ([]models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Transaction, len(r.s.transactions[orderID]))
	copy(out, r.s.transactions[orderID])
	return out, nil
}

// --- reviews ---

type reviewStore struct{ s *Store }

// SaveWithRating inserts the review and writes the service aggregate under
// one critical section, with the same optimistic guard as the Mongo
// implementation: a stale review_count aborts with ErrConflict.
func (r *reviewStore) SaveWithRating(_ context.Context, review *models.Review, newRating float64, newCount int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviewByOrder[review.OrderID]; ok {
		return repository.ErrDuplicate
	}
	svc, ok := r.s.services[review.ServiceID]
	if !ok {
		return repository.ErrNotFound
	}
	if svc.ReviewCount != newCount-1 {
		return repository.ErrConflict
	}

	svc.Rating = newRating
	svc.ReviewCount = newCount
	svc.UpdatedAt = time.Now()
	r.s.services[review.ServiceID] = svc
	r.s.reviews[review.ID] = *review
	r.s.reviewByOrder[review.OrderID] = review.ID
	return nil
}

func (r *reviewStore) GetByOrderID(_ context.Context, orderID string) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.reviewByOrder[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rev := r.s.reviews[id]
	return &rev, nil
}

func (r *reviewStore) ListByService(_ context.Context, serviceID string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Review
	for _, rev := range r.s.reviews {
		if rev.ServiceID == serviceID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
