package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is a ledger entry in the payments collection. Refunds are stored
// as separate entries with a negative amount rather than mutating the
// original payment.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID    primitive.ObjectID `bson:"orderId" json:"orderId"`
	UserEmail  string             `bson:"userEmail" json:"userEmail"`
	Amount     float64            `bson:"amount" json:"amount"` // negative = refund
	Method     string             `bson:"method" json:"method"`
	Status     string             `bson:"status" json:"status"`
	RefundedBy string             `bson:"refundedBy,omitempty" json:"refundedBy,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
