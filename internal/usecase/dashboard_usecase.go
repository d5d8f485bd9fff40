package usecase

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
)

const dashboardRecentLimit = "5"

// Dashboard is everything the landing page shows. Recent appointments are
// optional: when they fail the analytics still render.
type Dashboard struct {
	Analytics *entity.DashboardAnalytics
	Recent    []entity.Appointment
	RecentErr error
}

type DashboardUsecase interface {
	Load(ctx context.Context) (*Dashboard, error)
}

type dashboardUsecase struct {
	dashboardRepo   repository.DashboardRepository
	appointmentRepo repository.AppointmentRepository
	log             *logrus.Logger
}

func NewDashboardUsecase(dashboardRepo repository.DashboardRepository, appointmentRepo repository.AppointmentRepository, log *logrus.Logger) DashboardUsecase {
	return &dashboardUsecase{dashboardRepo: dashboardRepo, appointmentRepo: appointmentRepo, log: log}
}

func (u *dashboardUsecase) Load(ctx context.Context) (*Dashboard, error) {
	out := &Dashboard{}

	var g errgroup.Group
	g.Go(func() error {
		a, err := u.dashboardRepo.Analytics(ctx, nil)
		out.Analytics = a
		return err
	})
	g.Go(func() error {
		q := url.Values{}
		q.Set("page", "1")
		q.Set("limit", dashboardRecentLimit)
		q.Set("sortBy", "date")
		q.Set("sortOrder", "desc")
		page, err := u.appointmentRepo.List(ctx, q)
		if err != nil {
			u.log.Warnf("Failed to load recent appointments: %+v", err)
			out.RecentErr = err
			return nil
		}
		out.Recent = page.Items
		return nil
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load dashboard analytics: %+v", err)
		return nil, err
	}
	return out, nil
}
