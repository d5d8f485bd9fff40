package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/converter"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

var ErrMissingResetToken = errors.New("reset token is required")

// AuthUsecase covers the public account pages. Login itself lives on the
// session manager because it mutates the session.
type AuthUsecase interface {
	Register(ctx context.Context, reg *screen.Registration, values form.Values, role string) error
	VerifyRegistration(ctx context.Context, reg *screen.Registration, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authUsecase struct {
	authRepo repository.AuthRepository
	log      *logrus.Logger
}

func NewAuthUsecase(authRepo repository.AuthRepository, log *logrus.Logger) AuthUsecase {
	return &authUsecase{authRepo: authRepo, log: log}
}

// Register runs the first step of a two-step registration. On success reg
// waits for the one-time code; on failure it is back to idle.
func (u *authUsecase) Register(ctx context.Context, reg *screen.Registration, values form.Values, role string) error {
	if err := reg.BeginRegister(); err != nil {
		return err
	}

	req, err := converter.ValuesToRegisterRequest(values, role)
	if err != nil {
		reg.RegisterFailed()
		return err
	}

	result, err := u.authRepo.Register(ctx, req)
	if err != nil {
		u.log.Warnf("Failed to register %s: %+v", req.Username, err)
		reg.RegisterFailed()
		return err
	}

	reg.Registered(*result)
	return nil
}

// VerifyRegistration submits the one-time code. A rejected code keeps the
// secret on screen for another attempt.
func (u *authUsecase) VerifyRegistration(ctx context.Context, reg *screen.Registration, code string) error {
	if err := reg.BeginVerify(); err != nil {
		return err
	}

	_, err := u.authRepo.VerifyTwoFactor(ctx, dto.VerifyTwoFactorRequest{
		UserID: reg.UserID,
		Token:  strings.TrimSpace(code),
	})
	if err != nil {
		u.log.Warnf("Failed to verify registration for %s: %+v", reg.UserID, err)
		reg.VerifyFailed()
		return err
	}

	reg.Verified()
	return nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	return u.authRepo.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: strings.TrimSpace(email)})
}

func (u *authUsecase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return ErrMissingResetToken
	}
	return u.authRepo.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: password})
}
