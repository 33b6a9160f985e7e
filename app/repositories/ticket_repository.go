package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/database"
)

// TicketRepository handles the supportTickets collection.
type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(database.ColTickets)}
}

// Create files a new support ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.SupportTicket) error {
	_, err := r.col.InsertOne(ctx, ticket)
	return err
}

// FindByEmail returns a customer's tickets, newest first.
func (r *TicketRepository) FindByEmail(ctx context.Context, email string) ([]models.SupportTicket, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

// All returns every ticket, newest first.
func (r *TicketRepository) All(ctx context.Context) ([]models.SupportTicket, error) {
	return r.find(ctx, bson.M{})
}

// AddResponse appends an admin reply and marks the ticket responded.
func (r *TicketRepository) AddResponse(ctx context.Context, hex string, resp models.TicketResponse) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"responses": resp},
			"$set":  bson.M{"status": models.TicketResponded, "updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M) ([]models.SupportTicket, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	var tickets []models.SupportTicket
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
