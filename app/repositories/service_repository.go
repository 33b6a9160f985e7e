package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/database"
)

// ServiceRepository handles the services catalog collection.
type ServiceRepository struct {
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{col: db.Collection(database.ColServices)}
}

// All returns the whole catalog, newest first.
func (r *ServiceRepository) All(ctx context.Context) ([]models.Service, error) {
	return r.find(ctx, bson.M{})
}

// Search matches name or description against q, case-insensitively.
// An empty q returns the whole catalog.
func (r *ServiceRepository) Search(ctx context.Context, q string) ([]models.Service, error) {
	if q == "" {
		return r.All(ctx)
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return r.find(ctx, bson.M{"$or": []bson.M{
		{"name": re},
		{"description": re},
	}})
}

// FindByID fetches a catalog entry by its hex identifier.
func (r *ServiceRepository) FindByID(ctx context.Context, hex string) (models.Service, error) {
	id, err := objectID(hex)
	if err != nil {
		return models.Service{}, err
	}
	var svc models.Service
	err = r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	return svc, mapErr(err)
}

// NameTaken reports whether another catalog entry already uses name
// (case-insensitive, whole-name match). excludeHex may be empty when
// creating a new entry.
func (r *ServiceRepository) NameTaken(ctx context.Context, name, excludeHex string) (bool, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	if excludeHex != "" {
		id, err := objectID(excludeHex)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": id}
	}

	err := r.col.FindOne(ctx, filter).Err()
	if err == nil {
		return true, nil
	}
	if mapErr(err) == ErrNotFound {
		return false, nil
	}
	return false, err
}

// Create inserts a new catalog entry.
func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	res, err := r.col.InsertOne(ctx, svc)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		svc.ID = id
	}
	return nil
}

// Update saves name, description and price of an existing entry.
func (r *ServiceRepository) Update(ctx context.Context, hex string, name, description string, price float64) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        name,
			"description": description,
			"price":       price,
			"updatedAt":   time.Now(),
		}},
	)
	return err
}

// Delete removes a catalog entry.
func (r *ServiceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the catalog size; used to decide whether to fall back to
// the built-in default catalog.
func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// SeedDefaults inserts the built-in catalog when the collection is empty.
func (r *ServiceRepository) SeedDefaults(ctx context.Context) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	defaults := models.DefaultServices()
	docs := make([]interface{}, len(defaults))
	now := time.Now()
	for i := range defaults {
		defaults[i].CreatedAt = now
		defaults[i].UpdatedAt = now
		docs[i] = defaults[i]
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *ServiceRepository) find(ctx context.Context, filter bson.M) ([]models.Service, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}
