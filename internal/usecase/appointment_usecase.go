package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
)

// AppointmentHistory is the appointment with its status trail.
type AppointmentHistory struct {
	Appointment *entity.Appointment
	Events      []entity.AppointmentEvent
}

type AppointmentUsecase interface {
	ResourceUsecase[entity.Appointment]
	History(ctx context.Context, id string) (*AppointmentHistory, error)
}

type appointmentUsecase struct {
	ResourceUsecase[entity.Appointment]
	repo repository.AppointmentRepository
	log  *logrus.Logger
}

func NewAppointmentUsecase(repo repository.AppointmentRepository, log *logrus.Logger) AppointmentUsecase {
	return &appointmentUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Appointment]("appointments", repo, Codec[entity.Appointment]{}, log),
		repo:            repo,
		log:             log,
	}
}

func (u *appointmentUsecase) History(ctx context.Context, id string) (*AppointmentHistory, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	out := &AppointmentHistory{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := u.repo.Get(gctx, id)
		out.Appointment = a
		return err
	})
	g.Go(func() error {
		events, err := u.repo.History(gctx, id)
		out.Events = events
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load appointment history %s: %+v", id, err)
		return nil, err
	}
	return out, nil
}
