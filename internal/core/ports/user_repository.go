package ports

import (
	"context"
	"time"

	"github.com/wanderplan/travel-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
//
// Uniqueness of name and email is ultimately enforced by the store's unique
// indexes: Create and UpdateProfile must translate a duplicate-key signal
// into domain.ErrNameTaken / domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByNameOrEmail returns any user holding either value, for the
	// registration pre-check.
	FindByNameOrEmail(ctx context.Context, name, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetOTP stores the OTP pair atomically.
	SetResetOTP(ctx context.Context, id string, otp int, expires time.Time) error
	// ResetPassword replaces the hash and clears both OTP fields in one write.
	ResetPassword(ctx context.Context, id, passwordHash string) error
}
