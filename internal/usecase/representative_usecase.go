package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
)

type RepresentativeUsecase interface {
	ResourceUsecase[entity.Representative]
	Recount(ctx context.Context, id string) (*entity.Representative, error)
	Stats(ctx context.Context, id string) (*entity.RepresentativeStats, error)
}

type representativeUsecase struct {
	ResourceUsecase[entity.Representative]
	repo repository.RepresentativeRepository
	log  *logrus.Logger
}

func NewRepresentativeUsecase(repo repository.RepresentativeRepository, log *logrus.Logger) RepresentativeUsecase {
	return &representativeUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Representative]("representatives", repo, RepresentativeCodec, log),
		repo:            repo,
		log:             log,
	}
}

// Recount asks the backend to recompute the patient and doctor counts.
func (u *representativeUsecase) Recount(ctx context.Context, id string) (*entity.Representative, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	rep, err := u.repo.Recount(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to recount representative %s: %+v", id, err)
		return nil, err
	}
	return rep, nil
}

func (u *representativeUsecase) Stats(ctx context.Context, id string) (*entity.RepresentativeStats, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return u.repo.Stats(ctx, id)
}
