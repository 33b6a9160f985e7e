package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a bookable catalog entry in the services collection.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"id,omitempty" json:"slug"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DefaultServices is the built-in catalog shown when the services collection
// is empty, and the seed data for db:seed.
func DefaultServices() []Service {
	return []Service{
		{Slug: "wash-fold", Name: "Wash & Fold", Price: 180, Description: "Standard wash and fold service"},
		{Slug: "dry-clean", Name: "Dry Clean", Price: 250, Description: "Dry cleaning for delicate garments"},
		{Slug: "ironing", Name: "Ironing", Price: 120, Description: "Ironing and pressing service"},
	}
}
