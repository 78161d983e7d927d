package orderRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"huduma/database/repository"
	"huduma/models"
)

// SettlePayment flips a pending order to confirmed and records the settlement
// transaction in a single multi-document transaction. The status filter is the
// serialization guard: of two concurrent settlements for the same order, only
// one can match the pending document, the other aborts with ErrConflict.
func (r *MongoOrderRepo) SettlePayment(ctx context.Context, orderID string, txn *models.Transaction) error {
	client := r.orderColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": orderID, "status": models.OrderPending}
		update := bson.M{"$set": bson.M{
			"status":           models.OrderConfirmed,
			"payment_received": true,
		}}

		res, err := r.orderColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("order transition failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return r.classifyGuardMiss(sc, orderID)
		}

		if _, err := r.txnColl.InsertOne(sc, txn); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repository.ErrConflict
			}
			return fmt.Errorf("insert transaction failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
