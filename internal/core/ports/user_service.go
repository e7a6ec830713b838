package ports

import (
	"context"

	"github.com/wanderplan/travel-api/internal/core/domain"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email string, otp int) error
	ResetPassword(ctx context.Context, email string, otp int, newPassword string) error
}
