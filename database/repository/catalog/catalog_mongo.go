package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"huduma/database"
	"huduma/database/repository"
	"huduma/models"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{coll: database.Collection("services")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new service listing.
func (r *MongoCatalogRepo) Create(ctx context.Context, svc *models.Service) error {
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by its unique ID.
func (r *MongoCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

// UpdateListing modifies the provider-editable fields of a listing. The rating
// aggregate is deliberately excluded from the $set.
func (r *MongoCatalogRepo) UpdateListing(ctx context.Context, svc *models.Service) error {
	filter := bson.M{"id": svc.ID}
	update := bson.M{"$set": bson.M{
		"title":         svc.Title,
		"description":   svc.Description,
		"price":         svc.Price,
		"category":      svc.Category,
		"thumbnail_url": svc.ThumbnailURL,
		"updated_at":    time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByProvider retrieves all listings owned by a provider.
func (r *MongoCatalogRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list services for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, cursor.Err()
}
