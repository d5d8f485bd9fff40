package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type AuditLogRepository interface {
	List(ctx context.Context, query url.Values) (*entity.Page[entity.AuditLog], error)
}

type DashboardRepository interface {
	Analytics(ctx context.Context, query url.Values) (*entity.DashboardAnalytics, error)
}
