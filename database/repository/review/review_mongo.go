package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB. It holds both
// the review collection and the service collection because the rating fold
// spans the two.
type MongoReviewRepo struct {
	reviewColl  *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{
		reviewColl:  database.Collection("reviews"),
		serviceColl: database.Collection("services"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.reviewColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// SaveWithRating inserts the review and writes the recomputed service
// aggregate in one multi-document transaction. The review_count filter is the
// optimistic guard: a concurrent fold that committed first changes the count,
// the guard misses and the whole unit aborts with ErrConflict.
func (r *MongoReviewRepo) SaveWithRating(ctx context.Context, review *models.Review, newRating float64, newCount int) error {
	client := r.reviewColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.reviewColl.InsertOne(sc, review); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repository.ErrDuplicate
			}
			return fmt.Errorf("insert review failed: %w", err)
		}

		filter := bson.M{"id": review.ServiceID, "review_count": newCount - 1}
		update := bson.M{"$set": bson.M{
			"rating":       newRating,
			"review_count": newCount,
			"updated_at":   time.Now(),
		}}

		res, err := r.serviceColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("rating fold failed: %w", err)
		}
		if res.MatchedCount == 0 {
			if err := r.serviceColl.FindOne(sc, bson.M{"id": review.ServiceID}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
				return repository.ErrNotFound
			}
			return repository.ErrConflict
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// GetByOrderID retrieves the review placed for an order, if any.
func (r *MongoReviewRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Review, error) {
	var review models.Review
	if err := r.reviewColl.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review for order %s: %w", orderID, err)
	}
	return &review, nil
}

// ListByService retrieves all reviews for a service, newest first.
func (r *MongoReviewRepo) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.reviewColl.Find(ctx, bson.M{"service_id": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var rev models.Review
		if err := cursor.Decode(&rev); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, cursor.Err()
}
