package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type userRepository struct {
	*backend.Collection[entity.User]
}

func NewUserRepository(client *backend.Client) domainRepo.UserRepository {
	return &userRepository{
		Collection: backend.NewCollection[entity.User](client, "/users", "users"),
	}
}

func (r *userRepository) Grant(ctx context.Context, userID, module string, ops []entity.Operation) error {
	return r.Client().Post(ctx, r.Path(userID, "privileges", "grant"), privilegeChange(module, ops), nil)
}

func (r *userRepository) Revoke(ctx context.Context, userID, module string, ops []entity.Operation) error {
	return r.Client().Post(ctx, r.Path(userID, "privileges", "revoke"), privilegeChange(module, ops), nil)
}

func (r *userRepository) Modules(ctx context.Context) ([]entity.PrivilegeModule, error) {
	modules := backend.NewCollection[entity.PrivilegeModule](r.Client(), "/privilege-modules", "modules")
	page, err := modules.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func privilegeChange(module string, ops []entity.Operation) dto.PrivilegeChangeRequest {
	body := dto.PrivilegeChangeRequest{Module: module, Operations: make([]string, len(ops))}
	for i, op := range ops {
		body.Operations[i] = string(op)
	}
	return body
}
