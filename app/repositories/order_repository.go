package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/database"
	"github.com/shashiranjanraj/freshfold/pkg/metrics"
)

// OrderRepository handles the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.ColOrders)}
}

// newestFirst sorts listings the way every order page shows them.
var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

// Create inserts a new booking and backfills the generated ObjectID.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// FindByID fetches a single order by its hex identifier.
func (r *OrderRepository) FindByID(ctx context.Context, hex string) (models.Order, error) {
	id, err := objectID(hex)
	if err != nil {
		return models.Order{}, err
	}
	var order models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return order, mapErr(err)
}

// FindByEmail returns a customer's orders, newest first.
func (r *OrderRepository) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return r.Find(ctx, bson.M{"userEmail": email})
}

// Find returns the orders matching filter, newest first. Pass an empty
// bson.M for all orders.
func (r *OrderRepository) Find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("find", time.Now())

	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets a new lifecycle status on the order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, hex, status string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid records a successful payment on the order and moves it into
// processing.
func (r *OrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentPaid,
			"status":        models.OrderProcessing,
			"updatedAt":     time.Now(),
		}},
	)
	return err
}

// MarkRefunded flags both the payment status and lifecycle status as refunded.
func (r *OrderRepository) MarkRefunded(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentRefundStatus,
			"status":        models.OrderRefunded,
			"updatedAt":     time.Now(),
		}},
	)
	return err
}

// CountReferencingService counts orders that reference a catalog entry under
// any of the identifier shapes historical documents used. Guards service
// deletion.
func (r *OrderRepository) CountReferencingService(ctx context.Context, svc models.Service) (int64, error) {
	variants := []bson.M{
		{"serviceId": svc.ID},
		{"serviceId": svc.ID.Hex()},
		{"serviceName": svc.Name},
	}
	if svc.Slug != "" {
		variants = append(variants, bson.M{"serviceId": svc.Slug})
	}
	return r.col.CountDocuments(ctx, bson.M{"$or": variants})
}
