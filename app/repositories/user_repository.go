package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/pkg/database"
)

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.ColUsers)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, mapErr(err)
}

// FindByID looks up a user by the hex form of their ObjectID.
func (r *UserRepository) FindByID(ctx context.Context, hex string) (models.User, error) {
	id, err := objectID(hex)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, mapErr(err)
}

// FindByVerificationToken looks up a user holding the given email
// verification token, regardless of expiry. Expiry is the caller's call
// so an expired link renders its own message.
func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"verificationToken": token}).Decode(&user)
	return user, mapErr(err)
}

// FindByResetToken looks up a user with an unexpired password reset token.
func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{
		"resetToken":  token,
		"resetExpiry": bson.M{"$gt": now},
	}).Decode(&user)
	return user, mapErr(err)
}

// All returns every registered user.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a new user document.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// MarkVerified flips the verification flag and clears the one-time token.
func (r *UserRepository) MarkVerified(ctx context.Context, token string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"verificationToken": token},
		bson.M{
			"$set":   bson.M{"isEmailVerified": true},
			"$unset": bson.M{"verificationToken": "", "tokenExpiry": ""},
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

// SetResetToken stores a password reset token and its expiry on the account.
func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"resetToken": token, "resetExpiry": expiry}},
	)
	return err
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, hash string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":   bson.M{"passwordHash": hash, "updatedAt": time.Now()},
			"$unset": bson.M{"resetToken": "", "resetExpiry": ""},
		},
	)
	return err
}

// UpdateProfile saves the editable profile fields, keyed by current email.
func (r *UserRepository) UpdateProfile(ctx context.Context, currentEmail, firstName, lastName, email string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": currentEmail},
		bson.M{"$set": bson.M{
			"firstName": firstName,
			"lastName":  lastName,
			"email":     email,
			"updatedAt": time.Now(),
		}},
	)
	return err
}

// UpdateByID saves the admin-editable fields of a user document.
func (r *UserRepository) UpdateByID(ctx context.Context, hex, firstName, lastName, role, accountStatus string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"firstName":     firstName,
			"lastName":      lastName,
			"role":          role,
			"accountStatus": accountStatus,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user document.
func (r *UserRepository) Delete(ctx context.Context, hex string) error {
	id, err := objectID(hex)
	if err != nil {
		return err
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GrantAdmin promotes the account with the given email to the admin role.
// Returns ErrNotFound when no such account exists.
func (r *UserRepository) GrantAdmin(ctx context.Context, email string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
