package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

// RadiologistRepository lists radiologists from their own collection but
// writes through the generic user endpoints.
type RadiologistRepository interface {
	List(ctx context.Context, query url.Values) (*entity.Page[entity.Radiologist], error)
	Get(ctx context.Context, id string) (*entity.Radiologist, error)
	Update(ctx context.Context, id string, body interface{}) (*entity.Radiologist, error)
	Delete(ctx context.Context, id string) error
}
