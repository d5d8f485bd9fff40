package repository

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type UserRepository interface {
	ListRepository[entity.User]
	Grant(ctx context.Context, userID, module string, ops []entity.Operation) error
	Revoke(ctx context.Context, userID, module string, ops []entity.Operation) error
	Modules(ctx context.Context) ([]entity.PrivilegeModule, error)
}
