package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

// RadiologistUsecase lists and edits radiologists; new ones come in through
// the two-step registration.
type RadiologistUsecase interface {
	ResourceUsecase[entity.Radiologist]
	Register(ctx context.Context, reg *screen.Registration, values form.Values) error
	Verify(ctx context.Context, reg *screen.Registration, code string) error
}

type radiologistUsecase struct {
	ResourceUsecase[entity.Radiologist]
	auth AuthUsecase
}

func NewRadiologistUsecase(repo repository.RadiologistRepository, auth AuthUsecase, log *logrus.Logger) RadiologistUsecase {
	return &radiologistUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Radiologist]("radiologists", repo, RadiologistCodec, log),
		auth:            auth,
	}
}

func (u *radiologistUsecase) Register(ctx context.Context, reg *screen.Registration, values form.Values) error {
	return u.auth.Register(ctx, reg, values, entity.RoleRadiologist)
}

func (u *radiologistUsecase) Verify(ctx context.Context, reg *screen.Registration, code string) error {
	return u.auth.VerifyRegistration(ctx, reg, code)
}
