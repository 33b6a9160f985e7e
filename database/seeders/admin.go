package seeders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/config"
	"github.com/shashiranjanraj/freshfold/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the initial admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no account with that email exists.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		fmt.Printf("skipped (ADMIN_EMAIL not set), ")
		return nil
	}

	users := repositories.NewUserRepository(db)

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		// Already present. Make sure it carries the admin role.
		return users.GrantAdmin(ctx, email)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	return users.Create(ctx, &models.User{
		UserID:          primitive.NewObjectID().Hex(),
		FirstName:       "Admin",
		Email:           email,
		PasswordHash:    hash,
		Role:            models.RoleAdmin,
		AccountStatus:   "active",
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}
