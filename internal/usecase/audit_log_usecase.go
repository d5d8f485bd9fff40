package usecase

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

type AuditLogUsecase interface {
	Load(ctx context.Context, state screen.ListState, action string) (*entity.Page[entity.AuditLog], error)
}

type auditLogUsecase struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{auditRepo: auditRepo}
}

// Load reads one page of the trail, optionally narrowed to one action.
func (u *auditLogUsecase) Load(ctx context.Context, state screen.ListState, action string) (*entity.Page[entity.AuditLog], error) {
	q := state.Query()
	q.Del("isActive")
	if action != "" {
		q.Set("action", action)
	}
	return u.auditRepo.List(ctx, q)
}
