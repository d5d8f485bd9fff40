package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type authRepository struct {
	client *backend.Client
}

func NewAuthRepository(client *backend.Client) domainRepo.AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, body interface{}) (*entity.AuthResult, error) {
	var result entity.AuthResult
	if err := r.client.Post(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *authRepository) Me(ctx context.Context) (*entity.Principal, error) {
	var envelope struct {
		User *entity.Principal `json:"user"`
		entity.Principal
	}
	if err := r.client.Get(ctx, "/auth/me", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.User != nil {
		return envelope.User, nil
	}
	return &envelope.Principal, nil
}

func (r *authRepository) Logout(ctx context.Context) error {
	return r.client.Post(ctx, "/auth/logout", nil, nil)
}

func (r *authRepository) Register(ctx context.Context, body interface{}) (*entity.Registration, error) {
	var reg entity.Registration
	if err := r.client.Post(ctx, "/auth/register", body, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *authRepository) VerifyTwoFactor(ctx context.Context, body interface{}) (*entity.AuthResult, error) {
	var result entity.AuthResult
	if err := r.client.Post(ctx, "/auth/verify-2fa", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *authRepository) ForgotPassword(ctx context.Context, body interface{}) error {
	return r.client.Post(ctx, "/auth/forgot-password", body, nil)
}

func (r *authRepository) ResetPassword(ctx context.Context, body interface{}) error {
	return r.client.Post(ctx, "/auth/reset-password", body, nil)
}
