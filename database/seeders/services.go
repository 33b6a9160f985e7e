package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/repositories"
)

func init() {
	Register("services", SeedServices)
}

// SeedServices inserts the built-in laundry catalog when the services
// collection is empty. Re-running against a populated catalog is a no-op.
func SeedServices(ctx context.Context, db *mongo.Database) error {
	n, err := repositories.NewServiceRepository(db).SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("inserted %d services, ", n)
	}
	return nil
}
