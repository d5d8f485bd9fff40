package usecase

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) List(ctx context.Context, query url.Values) (*entity.Page[entity.User], error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*entity.Page[entity.User])
	return page, args.Error(1)
}

func (m *mockUserRepository) Get(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Grant(ctx context.Context, userID, module string, ops []entity.Operation) error {
	return m.Called(ctx, userID, module, ops).Error(0)
}

func (m *mockUserRepository) Revoke(ctx context.Context, userID, module string, ops []entity.Operation) error {
	return m.Called(ctx, userID, module, ops).Error(0)
}

func (m *mockUserRepository) Modules(ctx context.Context) ([]entity.PrivilegeModule, error) {
	args := m.Called(ctx)
	mods, _ := args.Get(0).([]entity.PrivilegeModule)
	return mods, args.Error(1)
}

type mockAuthRepository struct {
	mock.Mock
}

func (m *mockAuthRepository) Login(ctx context.Context, body interface{}) (*entity.AuthResult, error) {
	args := m.Called(ctx, body)
	r, _ := args.Get(0).(*entity.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthRepository) Me(ctx context.Context) (*entity.Principal, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*entity.Principal)
	return p, args.Error(1)
}

func (m *mockAuthRepository) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAuthRepository) Register(ctx context.Context, body interface{}) (*entity.Registration, error) {
	args := m.Called(ctx, body)
	r, _ := args.Get(0).(*entity.Registration)
	return r, args.Error(1)
}

func (m *mockAuthRepository) VerifyTwoFactor(ctx context.Context, body interface{}) (*entity.AuthResult, error) {
	args := m.Called(ctx, body)
	r, _ := args.Get(0).(*entity.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthRepository) ForgotPassword(ctx context.Context, body interface{}) error {
	return m.Called(ctx, body).Error(0)
}

func (m *mockAuthRepository) ResetPassword(ctx context.Context, body interface{}) error {
	return m.Called(ctx, body).Error(0)
}

// memoryCollection is an in-memory CRUD repository that records the
// queries and bodies it receives.
type memoryCollection[T any] struct {
	items   []T
	pages   int
	queries []url.Values
	bodies  []interface{}
	deleted []string
	err     error
}

func (c *memoryCollection[T]) List(_ context.Context, query url.Values) (*entity.Page[T], error) {
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	pages := c.pages
	if pages == 0 && len(c.items) > 0 {
		pages = 1
	}
	return &entity.Page[T]{Items: c.items, Total: len(c.items), TotalPages: pages}, nil
}

func (c *memoryCollection[T]) Get(_ context.Context, _ string) (*T, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(c.items) == 0 {
		return nil, nil
	}
	item := c.items[0]
	return &item, nil
}

func (c *memoryCollection[T]) Create(_ context.Context, body interface{}) (*T, error) {
	c.bodies = append(c.bodies, body)
	var zero T
	return &zero, c.err
}

func (c *memoryCollection[T]) Update(_ context.Context, _ string, body interface{}) (*T, error) {
	c.bodies = append(c.bodies, body)
	var zero T
	return &zero, c.err
}

func (c *memoryCollection[T]) Delete(_ context.Context, id string) error {
	c.deleted = append(c.deleted, id)
	return c.err
}

// pagedCollection serves items perPage at a time, whatever limit is asked for.
type pagedCollection[T any] struct {
	memoryCollection[T]
	perPage int
}

func (f *pagedCollection[T]) List(_ context.Context, query url.Values) (*entity.Page[T], error) {
	f.queries = append(f.queries, query)
	pages := (len(f.items) + f.perPage - 1) / f.perPage
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.perPage
	if start > len(f.items) {
		start = len(f.items)
	}
	end := start + f.perPage
	if end > len(f.items) {
		end = len(f.items)
	}
	return &entity.Page[T]{Items: f.items[start:end], Total: len(f.items), TotalPages: pages}, nil
}

// readOnlyCollection exposes only the list verbs.
type readOnlyCollection[T any] struct {
	inner *memoryCollection[T]
}

func (r readOnlyCollection[T]) List(ctx context.Context, query url.Values) (*entity.Page[T], error) {
	return r.inner.List(ctx, query)
}

func (r readOnlyCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.inner.Get(ctx, id)
}
