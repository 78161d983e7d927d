package orderRepo

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

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	orderColl *mongo.Collection
	txnColl   *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	repo := &MongoOrderRepo{
		orderColl: database.Collection("orders"),
		txnColl:   database.Collection("transactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.orderColl.Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	txnIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}
	return nil
}

// Create inserts a new order document.
func (r *MongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if _, err := r.orderColl.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its unique ID.
func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.orderColl.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order with id %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser retrieves orders by party, newest first, optionally filtered by status.
func (r *MongoOrderRepo) ListByUser(ctx context.Context, userID string, role models.Role, statuses []models.OrderStatus) ([]models.Order, error) {
	field := "customer_id"
	if role == models.RoleProvider {
		field = "provider_id"
	}

	filter := bson.M{field: userID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orderColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for %s %s: %w", role, userID, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, cursor.Err()
}

// UpdateStatus moves an order between statuses, guarded on the current one.
func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus) error {
	filter := bson.M{"id": orderID, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}

	res, err := r.orderColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return r.classifyGuardMiss(ctx, orderID)
	}
	return nil
}

// ListTransactions returns the settlement records for an order.
func (r *MongoOrderRepo) ListTransactions(ctx context.Context, orderID string) ([]models.Transaction, error) {
	cursor, err := r.txnColl.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for order %s: %w", orderID, err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	for cursor.Next(ctx) {
		var t models.Transaction
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, cursor.Err()
}

// classifyGuardMiss distinguishes a missing order from a status guard failure.
func (r *MongoOrderRepo) classifyGuardMiss(ctx context.Context, orderID string) error {
	err := r.orderColl.FindOne(ctx, bson.M{"id": orderID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch order with id %s: %w", orderID, err)
	}
	return repository.ErrConflict
}
