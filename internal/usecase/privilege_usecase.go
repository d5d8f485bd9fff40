package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

var ErrUnknownModule = errors.New("unknown privilege module")

// PrivilegeChange is what Apply sent for one module.
type PrivilegeChange struct {
	Module  string
	Granted []entity.Operation
	Revoked []entity.Operation
}

// Empty reports whether nothing had to be sent.
func (c PrivilegeChange) Empty() bool {
	return len(c.Granted) == 0 && len(c.Revoked) == 0
}

type PrivilegeUsecase interface {
	Users(ctx context.Context, state screen.ListState) (*entity.Page[entity.User], error)
	User(ctx context.Context, id string) (*entity.User, error)
	Modules(ctx context.Context) ([]entity.PrivilegeModule, error)
	Apply(ctx context.Context, user *entity.User, desired map[string][]entity.Operation) ([]PrivilegeChange, error)
}

type privilegeUsecase struct {
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewPrivilegeUsecase(userRepo repository.UserRepository, log *logrus.Logger) PrivilegeUsecase {
	return &privilegeUsecase{userRepo: userRepo, log: log}
}

func (u *privilegeUsecase) Users(ctx context.Context, state screen.ListState) (*entity.Page[entity.User], error) {
	return u.userRepo.List(ctx, state.Query())
}

func (u *privilegeUsecase) User(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return u.userRepo.Get(ctx, id)
}

func (u *privilegeUsecase) Modules(ctx context.Context) ([]entity.PrivilegeModule, error) {
	return u.userRepo.Modules(ctx)
}

// Apply moves user's privileges to desired, one module at a time: a grant
// for what is missing and a revoke for what is extra. Modules absent from
// desired are left alone. It stops at the first failing call and returns
// the changes made so far.
func (u *privilegeUsecase) Apply(ctx context.Context, user *entity.User, desired map[string][]entity.Operation) ([]PrivilegeChange, error) {
	if user == nil || user.ID == "" {
		return nil, ErrMissingID
	}

	var changes []PrivilegeChange
	for _, module := range sortedModules(desired) {
		grant, revoke := PrivilegeDiff(user.PrivilegesFor(module), desired[module])
		change := PrivilegeChange{Module: module}

		if len(grant) > 0 {
			if err := u.userRepo.Grant(ctx, user.ID, module, grant); err != nil {
				u.log.Warnf("Failed to grant %s privileges to %s: %+v", module, user.ID, err)
				return changes, err
			}
			change.Granted = grant
		}
		if len(revoke) > 0 {
			if err := u.userRepo.Revoke(ctx, user.ID, module, revoke); err != nil {
				u.log.Warnf("Failed to revoke %s privileges from %s: %+v", module, user.ID, err)
				if !change.Empty() {
					changes = append(changes, change)
				}
				return changes, err
			}
			change.Revoked = revoke
		}

		if !change.Empty() {
			changes = append(changes, change)
		}
	}
	return changes, nil
}

// PrivilegeDiff returns the operations to grant and to revoke to go from
// current to desired, in display order.
func PrivilegeDiff(current, desired []entity.Operation) (grant, revoke []entity.Operation) {
	has := func(set []entity.Operation, op entity.Operation) bool {
		for _, o := range set {
			if o == op {
				return true
			}
		}
		return false
	}
	for _, op := range entity.Operations {
		switch inCur, inWant := has(current, op), has(desired, op); {
		case inWant && !inCur:
			grant = append(grant, op)
		case inCur && !inWant:
			revoke = append(revoke, op)
		}
	}
	return grant, revoke
}

func sortedModules(m map[string][]entity.Operation) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
