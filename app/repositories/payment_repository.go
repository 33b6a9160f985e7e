package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/database"
)

// PaymentRepository handles the payments collection.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(database.ColPayments)}
}

// Create appends a payment (or refund) entry to the ledger.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	_, err := r.col.InsertOne(ctx, payment)
	return err
}

// FindByEmail returns a customer's payment history, newest first.
func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

// All returns the full payment ledger, newest first.
func (r *PaymentRepository) All(ctx context.Context) ([]models.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
