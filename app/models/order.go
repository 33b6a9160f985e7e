package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Payment statuses carried on an order.
const (
	PaymentUnpaid       = "unpaid"
	PaymentPaid         = "paid"
	PaymentRefundStatus = "refunded"
)

// OrderStatuses lists every valid lifecycle status, used for form validation.
var OrderStatuses = []string{
	OrderPending, OrderProcessing, OrderShipped,
	OrderCompleted, OrderCancelled, OrderRefunded,
}

// Order is a booking document in the orders collection. Price is kept
// non-negative by convention at the booking boundary but is not enforced
// by the store.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	ServiceID     string             `bson:"serviceId" json:"serviceId"`
	ServiceName   string             `bson:"serviceName" json:"serviceName"`
	Price         float64            `bson:"price" json:"price"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	PickupDate    *time.Time         `bson:"pickupDate,omitempty" json:"pickupDate,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ValidOrderStatus reports whether s is a known lifecycle status.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
