package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

// ListRepository reads one remote collection.
type ListRepository[T any] interface {
	List(ctx context.Context, query url.Values) (*entity.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
}

// CRUDRepository adds the write verbs. body is the request DTO the backend expects.
type CRUDRepository[T any] interface {
	ListRepository[T]
	Create(ctx context.Context, body interface{}) (*T, error)
	Update(ctx context.Context, id string, body interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}
