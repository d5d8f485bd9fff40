package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

// AuthRepository covers the backend's /auth endpoints. Request bodies are DTOs.
type AuthRepository interface {
	Login(ctx context.Context, body interface{}) (*entity.AuthResult, error)
	Me(ctx context.Context) (*entity.Principal, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, body interface{}) (*entity.Registration, error)
	VerifyTwoFactor(ctx context.Context, body interface{}) (*entity.AuthResult, error)
	ForgotPassword(ctx context.Context, body interface{}) error
	ResetPassword(ctx context.Context, body interface{}) error
}
