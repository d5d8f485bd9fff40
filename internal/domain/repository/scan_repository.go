package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type ScanRepository interface {
	CRUDRepository[entity.Scan]
	AddImage(ctx context.Context, scanID string, body interface{}) (*entity.Scan, error)
	RemoveImage(ctx context.Context, scanID, imageID string) error
}
