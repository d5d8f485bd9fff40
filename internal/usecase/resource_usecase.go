package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

var (
	ErrUnsupported = errors.New("operation not supported for this resource")
	ErrMissingID   = errors.New("resource id is required")
)

// Codec converts between an entity, the editor's form values and the
// backend request body.
type Codec[T any] struct {
	Values func(*T) form.Values
	Encode func(form.Values) (interface{}, error)
}

type creator[T any] interface {
	Create(ctx context.Context, body interface{}) (*T, error)
}

type updater[T any] interface {
	Update(ctx context.Context, id string, body interface{}) (*T, error)
}

type deleter interface {
	Delete(ctx context.Context, id string) error
}

// ResourceUsecase is the data side of one management screen.
type ResourceUsecase[T any] interface {
	Load(ctx context.Context, state screen.ListState) (*entity.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Seed(ctx context.Context, id string) (form.Values, error)
	Create(ctx context.Context, values form.Values) (*T, error)
	Update(ctx context.Context, id string, values form.Values) (*T, error)
	Delete(ctx context.Context, id string) error
	Writable() bool
}

type resourceUsecase[T any] struct {
	name  string
	repo  repository.ListRepository[T]
	codec Codec[T]
	log   *logrus.Logger
}

// NewResourceUsecase wraps repo. Write verbs are available when repo
// implements them; the others return ErrUnsupported.
func NewResourceUsecase[T any](name string, repo repository.ListRepository[T], codec Codec[T], log *logrus.Logger) ResourceUsecase[T] {
	return &resourceUsecase[T]{name: name, repo: repo, codec: codec, log: log}
}

func (u *resourceUsecase[T]) Load(ctx context.Context, state screen.ListState) (*entity.Page[T], error) {
	page, err := u.repo.List(ctx, state.Query())
	if err != nil {
		u.log.Warnf("Failed to load %s: %+v", u.name, err)
		return nil, err
	}
	return page, nil
}

func (u *resourceUsecase[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return u.repo.Get(ctx, id)
}

// Seed fetches id and converts it to editor values.
func (u *resourceUsecase[T]) Seed(ctx context.Context, id string) (form.Values, error) {
	item, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.codec.Values == nil {
		return form.Values{}, nil
	}
	return u.codec.Values(item), nil
}

func (u *resourceUsecase[T]) Create(ctx context.Context, values form.Values) (*T, error) {
	c, ok := u.repo.(creator[T])
	if !ok || u.codec.Encode == nil {
		return nil, ErrUnsupported
	}
	body, err := u.codec.Encode(values)
	if err != nil {
		return nil, err
	}
	return c.Create(ctx, body)
}

func (u *resourceUsecase[T]) Update(ctx context.Context, id string, values form.Values) (*T, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	w, ok := u.repo.(updater[T])
	if !ok || u.codec.Encode == nil {
		return nil, ErrUnsupported
	}
	body, err := u.codec.Encode(values)
	if err != nil {
		return nil, err
	}
	return w.Update(ctx, id, body)
}

func (u *resourceUsecase[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	d, ok := u.repo.(deleter)
	if !ok {
		return ErrUnsupported
	}
	return d.Delete(ctx, id)
}

func (u *resourceUsecase[T]) Writable() bool {
	_, ok := u.repo.(updater[T])
	return ok && u.codec.Encode != nil
}
