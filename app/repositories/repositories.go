// Package repositories wraps MongoDB collection access for the application
// models. Every repository takes the *mongo.Database at construction time so
// handlers and tests control which database they talk to.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a referenced document does not exist or an
// identifier fails to parse.
var ErrNotFound = errors.New("repositories: not found")

// objectID parses a hex identifier, mapping parse failures onto ErrNotFound
// so callers treat a malformed URL id the same as a missing document.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return id, nil
}

// mapErr converts driver-level not-found errors onto ErrNotFound.
func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
