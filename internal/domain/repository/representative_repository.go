package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type RepresentativeRepository interface {
	CRUDRepository[entity.Representative]
	Recount(ctx context.Context, id string) (*entity.Representative, error)
	Stats(ctx context.Context, id string) (*entity.RepresentativeStats, error)
}
