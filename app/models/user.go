package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to an account.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account document in the users collection.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"passwordHash" json:"-"` // never serialised
	Role            string             `bson:"role" json:"role"`
	AccountStatus   string             `bson:"accountStatus" json:"accountStatus"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`

	VerificationToken string     `bson:"verificationToken,omitempty" json:"-"`
	TokenExpiry       *time.Time `bson:"tokenExpiry,omitempty" json:"-"`
	ResetToken        string     `bson:"resetToken,omitempty" json:"-"`
	ResetExpiry       *time.Time `bson:"resetExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// SessionUser is the slice of a User stored in the server-side session.
type SessionUser struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the session belongs to an admin.
func (s SessionUser) IsAdmin() bool { return s.Role == RoleAdmin }

// FullName joins first and last name for display.
func (s SessionUser) FullName() string { return s.FirstName + " " + s.LastName }
