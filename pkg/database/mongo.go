// Package database manages the MongoDB client for FreshFold.
//
// Connect opens one pooled client for the whole process; handlers receive the
// *mongo.Database through their repositories instead of reaching for a global,
// so tests can swap in their own database.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/freshfold/config"
)

// Collection names used across the application.
const (
	ColUsers    = "users"
	ColServices = "services"
	ColOrders   = "orders"
	ColPayments = "payments"
	ColTickets  = "supportTickets"
	ColLogs     = "logs"
)

// Connect opens and pings a MongoDB client using the configured URI.
// The caller owns the client and must Disconnect it on shutdown.
func Connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, nil
}

// Database returns the configured application database handle.
func Database(client *mongo.Client) *mongo.Database {
	return client.Database(config.DatabaseName())
}

// EnsureSchema creates any missing collections and the indexes the query
// paths depend on. Safe to run repeatedly.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	required := []string{ColUsers, ColServices, ColOrders, ColPayments, ColTickets}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("database: list collections: %w", err)
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	for _, name := range required {
		if existing[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("database: create collection %s: %w", name, err)
		}
	}

	indexes := []struct {
		col   string
		model mongo.IndexModel
	}{
		{ColOrders, mongo.IndexModel{Keys: bson.D{{Key: "userEmail", Value: 1}}}},
		{ColOrders, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
		{ColPayments, mongo.IndexModel{Keys: bson.D{{Key: "orderId", Value: 1}}}},
		{ColUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, ix := range indexes {
		if _, err := db.Collection(ix.col).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("database: index on %s: %w", ix.col, err)
		}
	}

	return nil
}
