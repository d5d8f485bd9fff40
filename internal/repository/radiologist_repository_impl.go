package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type radiologistRepository struct {
	radiologists *backend.Collection[entity.Radiologist]
	users        *backend.Collection[entity.Radiologist]
}

func NewRadiologistRepository(client *backend.Client) domainRepo.RadiologistRepository {
	return &radiologistRepository{
		radiologists: backend.NewCollection[entity.Radiologist](client, "/radiologists", "radiologists"),
		users:        backend.NewCollection[entity.Radiologist](client, "/users", "users"),
	}
}

func (r *radiologistRepository) List(ctx context.Context, query url.Values) (*entity.Page[entity.Radiologist], error) {
	return r.radiologists.List(ctx, query)
}

func (r *radiologistRepository) Get(ctx context.Context, id string) (*entity.Radiologist, error) {
	return r.radiologists.Get(ctx, id)
}

func (r *radiologistRepository) Update(ctx context.Context, id string, body interface{}) (*entity.Radiologist, error) {
	return r.users.Update(ctx, id, body)
}

func (r *radiologistRepository) Delete(ctx context.Context, id string) error {
	return r.radiologists.Delete(ctx, id)
}
