package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/config"
	"github.com/shashiranjanraj/freshfold/pkg/auth"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/mail"
)

// Sentinel errors the controllers translate into user-facing messages.
var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrAccountSuspended   = errors.New("auth: account suspended")
	ErrEmailNotVerified   = errors.New("auth: email not verified")
	ErrTokenInvalid       = errors.New("auth: token invalid or expired")
)

// AuthService implements registration, login and the two token flows
// (email verification, password reset).
type AuthService struct {
	users *repositories.UserRepository
	now   func() time.Time
	// sendMail is swappable in tests so no SMTP connection is attempted.
	sendMail func(to, subject, body string) error
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{
		users: users,
		now:   time.Now,
		sendMail: func(to, subject, body string) error {
			return mail.To(to).Subject(subject).Body(body).Send()
		},
	}
}

// RegisterInput is the typed register form.
type RegisterInput struct {
	FirstName            string `json:"firstName" validate:"required,min=2,max=60"`
	LastName             string `json:"lastName" validate:"required,min=2,max=60"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,max=72,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register creates a customer account and emails a verification link.
// The mail going out is best-effort: a delivery failure is logged but does
// not roll back the account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("auth: lookup email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	token, err := auth.RandomToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiry := auth.TokenExpiry(now)
	user := &models.User{
		UserID:            primitive.NewObjectID().Hex(),
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Email:             email,
		PasswordHash:      hash,
		Role:              models.RoleCustomer,
		AccountStatus:     "active",
		VerificationToken: token,
		TokenExpiry:       &expiry,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	link := config.BaseURL() + "/verify-email?token=" + token
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to FreshFold. Please confirm your email within one hour:</p><p><a href=%q>Verify Email</a></p>",
		user.FirstName, link)
	if err := s.sendMail(user.Email, "Verify your FreshFold account", body); err != nil {
		logger.WithCtx(ctx).Warn("verification mail failed", "email", user.Email, "error", err)
	}

	return user, nil
}

// Login checks credentials and account state, returning the session slice of
// the account on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.SessionUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Burn a hash comparison anyway so missing and wrong-password
		// lookups take comparable time.
		auth.CheckPassword("$2a$12$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva", password)
		return models.SessionUser{}, ErrInvalidCredentials
	} else if err != nil {
		return models.SessionUser{}, fmt.Errorf("auth: lookup email: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.SessionUser{}, ErrInvalidCredentials
	}
	if user.AccountStatus != "active" {
		return models.SessionUser{}, ErrAccountSuspended
	}
	if !user.IsEmailVerified {
		return models.SessionUser{}, ErrEmailNotVerified
	}

	return models.SessionUser{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// VerifyEmail consumes a verification token. Expired or unknown tokens
// return ErrTokenInvalid.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	user, err := s.users.FindByVerificationToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTokenInvalid
	} else if err != nil {
		return fmt.Errorf("auth: lookup token: %w", err)
	}

	if user.TokenExpiry == nil || s.now().After(*user.TokenExpiry) {
		return ErrTokenInvalid
	}

	return s.users.MarkVerified(ctx, token)
}

// RequestPasswordReset issues a reset token and mails the link. Unknown
// emails succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("auth: lookup email: %w", err)
	}

	token, err := auth.RandomToken()
	if err != nil {
		return err
	}
	expiry := auth.TokenExpiry(s.now())
	if err := s.users.SetResetToken(ctx, user.Email, token, expiry); err != nil {
		return fmt.Errorf("auth: store reset token: %w", err)
	}

	link := config.BaseURL() + "/reset-password?token=" + token
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use the link below within one hour to choose a new password:</p><p><a href=%q>Reset Password</a></p>",
		user.FirstName, link)
	if err := s.sendMail(user.Email, "Reset your FreshFold password", body); err != nil {
		logger.WithCtx(ctx).Warn("reset mail failed", "email", user.Email, "error", err)
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	user, err := s.users.FindByResetToken(ctx, token, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTokenInvalid
	} else if err != nil {
		return fmt.Errorf("auth: lookup reset token: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.Email, hash)
}

// ChangePassword verifies the current password before storing a new one.
func (s *AuthService) ChangePassword(ctx context.Context, email, current, next string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("auth: lookup email: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.Email, hash)
}
