package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Support ticket statuses.
const (
	TicketOpen      = "open"
	TicketResponded = "responded"
)

// TicketResponse is an admin reply embedded in a ticket document.
type TicketResponse struct {
	Responder string    `bson:"responder" json:"responder"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SupportTicket is a customer request in the supportTickets collection.
type SupportTicket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	Responses []TicketResponse   `bson:"responses,omitempty" json:"responses,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
