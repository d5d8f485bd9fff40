package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/converter"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

type ScanUsecase interface {
	ResourceUsecase[entity.Scan]
	AddImage(ctx context.Context, scanID string, values form.Values) (*entity.Scan, error)
	RemoveImage(ctx context.Context, scanID, imageID string) error
}

type scanUsecase struct {
	ResourceUsecase[entity.Scan]
	repo repository.ScanRepository
	log  *logrus.Logger
}

func NewScanUsecase(repo repository.ScanRepository, log *logrus.Logger) ScanUsecase {
	return &scanUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Scan]("scans", repo, ScanCodec, log),
		repo:            repo,
		log:             log,
	}
}

func (u *scanUsecase) AddImage(ctx context.Context, scanID string, values form.Values) (*entity.Scan, error) {
	if scanID == "" {
		return nil, ErrMissingID
	}
	req, err := converter.ValuesToScanImageRequest(values)
	if err != nil {
		return nil, err
	}
	scan, err := u.repo.AddImage(ctx, scanID, req)
	if err != nil {
		u.log.Warnf("Failed to add image to scan %s: %+v", scanID, err)
		return nil, err
	}
	return scan, nil
}

func (u *scanUsecase) RemoveImage(ctx context.Context, scanID, imageID string) error {
	if scanID == "" || imageID == "" {
		return ErrMissingID
	}
	if err := u.repo.RemoveImage(ctx, scanID, imageID); err != nil {
		u.log.Warnf("Failed to remove image %s from scan %s: %+v", imageID, scanID, err)
		return err
	}
	return nil
}
