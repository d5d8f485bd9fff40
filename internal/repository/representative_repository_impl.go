package repository

import (
	"context"
	"net/http"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type representativeRepository struct {
	*backend.Collection[entity.Representative]
}

func NewRepresentativeRepository(client *backend.Client) domainRepo.RepresentativeRepository {
	return &representativeRepository{
		Collection: backend.NewCollection[entity.Representative](client, "/representatives", "representatives"),
	}
}

func (r *representativeRepository) Recount(ctx context.Context, id string) (*entity.Representative, error) {
	var rep entity.Representative
	err := r.Client().Call(ctx, http.MethodPost, r.Path(id, "recount"), nil, nil, &rep)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *representativeRepository) Stats(ctx context.Context, id string) (*entity.RepresentativeStats, error) {
	var stats entity.RepresentativeStats
	if err := r.Client().Get(ctx, r.Path(id, "stats"), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
