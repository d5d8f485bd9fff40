package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type scanRepository struct {
	*backend.Collection[entity.Scan]
}

func NewScanRepository(client *backend.Client) domainRepo.ScanRepository {
	return &scanRepository{
		Collection: backend.NewCollection[entity.Scan](client, "/scans", "scans"),
	}
}

func (r *scanRepository) AddImage(ctx context.Context, scanID string, body interface{}) (*entity.Scan, error) {
	var scan entity.Scan
	if err := r.Client().Post(ctx, r.Path(scanID, "images"), body, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) RemoveImage(ctx context.Context, scanID, imageID string) error {
	return r.Client().Delete(ctx, r.Path(scanID, "images", imageID))
}
