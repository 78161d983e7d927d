package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"huduma/database/repository"
	catalogRepo "huduma/database/repository/catalog"
	"huduma/models"
	"huduma/utils"
)

// cacheTTL bounds how long a cached listing may serve reads.
const cacheTTL = 5 * time.Minute

// CreateServiceRequest carries the inputs for publishing a listing.
type CreateServiceRequest struct {
	ProviderID   string
	Title        string
	Description  string
	Price        float64
	Category     string
	ThumbnailURL string
}

// UpdateServiceRequest carries the provider-editable fields of a listing.
// The rating aggregate is not editable through this path.
type UpdateServiceRequest struct {
	ServiceID    string
	Title        string
	Description  string
	Price        float64
	Category     string
	ThumbnailURL string
}

// CatalogService manages provider listings; it is the service-catalog
// collaborator the order pipeline snapshots listings from.
type CatalogService interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (*models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	UpdateService(ctx context.Context, providerID string, req UpdateServiceRequest) (*models.Service, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
}

// DefaultCatalogService implements CatalogService with a redis read-through
// cache in front of the repository. Cache is optional; a nil client means
// every read goes to the repository.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

// CreateService publishes a new listing with a zeroed rating aggregate.
func (s *DefaultCatalogService) CreateService(ctx context.Context, req CreateServiceRequest) (*models.Service, error) {
	svc := &models.Service{
		ID:           uuid.New().String(),
		ProviderID:   req.ProviderID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

// GetServiceByID retrieves a listing, serving from cache when possible.
func (s *DefaultCatalogService) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if svc := s.cacheGet(ctx, id); svc != nil {
		return svc, nil
	}

	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("fetch service: %w", err)
	}

	s.cacheSet(ctx, svc)
	return svc, nil
}

// UpdateService applies provider edits to a listing and drops the cached
// copy. Existing orders keep their snapshots; a price change here never
// reaches an already placed order.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, providerID string, req UpdateServiceRequest) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("fetch service: %w", err)
	}
	if svc.ProviderID != providerID {
		return nil, ErrForbidden
	}

	svc.Title = req.Title
	svc.Description = req.Description
	svc.Price = req.Price
	svc.Category = req.Category
	svc.ThumbnailURL = req.ThumbnailURL

	if err := s.Repo.UpdateListing(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}

	s.cacheDrop(ctx, svc.ID)
	return svc, nil
}

// ListByProvider retrieves all listings owned by a provider.
func (s *DefaultCatalogService) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	services, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *DefaultCatalogService) cacheGet(ctx context.Context, id string) *models.Service {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, utils.CatalogCachePrefix+id).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger().Warn("catalog cache read failed", zap.Error(err))
		}
		return nil
	}
	var svc models.Service
	if err := json.Unmarshal([]byte(data), &svc); err != nil {
		s.logger().Warn("catalog cache entry corrupt", zap.String("serviceId", id), zap.Error(err))
		return nil
	}
	return &svc
}

func (s *DefaultCatalogService) cacheSet(ctx context.Context, svc *models.Service) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(svc)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.CatalogCachePrefix+svc.ID, data, cacheTTL).Err(); err != nil {
		s.logger().Warn("catalog cache write failed", zap.Error(err))
	}
}

func (s *DefaultCatalogService) cacheDrop(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.CatalogCachePrefix+id).Err(); err != nil {
		s.logger().Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultCatalogService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
