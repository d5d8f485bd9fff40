package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type auditLogRepository struct {
	logs *backend.Collection[entity.AuditLog]
}

func NewAuditLogRepository(client *backend.Client) domainRepo.AuditLogRepository {
	return &auditLogRepository{
		logs: backend.NewCollection[entity.AuditLog](client, "/audit-log", "logs"),
	}
}

func (r *auditLogRepository) List(ctx context.Context, query url.Values) (*entity.Page[entity.AuditLog], error) {
	return r.logs.List(ctx, query)
}

type dashboardRepository struct {
	client *backend.Client
}

func NewDashboardRepository(client *backend.Client) domainRepo.DashboardRepository {
	return &dashboardRepository{client: client}
}

func (r *dashboardRepository) Analytics(ctx context.Context, query url.Values) (*entity.DashboardAnalytics, error) {
	var analytics entity.DashboardAnalytics
	if err := r.client.Get(ctx, "/dashboard/analytics", query, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
