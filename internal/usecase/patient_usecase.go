package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

// PatientDetail is the drilldown screen: the patient and one page of history.
type PatientDetail struct {
	Patient   *entity.Patient
	Histories *entity.Page[entity.PatientHistory]
	State     screen.ListState
}

type PatientUsecase interface {
	ResourceUsecase[entity.Patient]
	Detail(ctx context.Context, id string, state screen.ListState) (*PatientDetail, error)
}

type patientUsecase struct {
	ResourceUsecase[entity.Patient]
	repo repository.PatientRepository
	log  *logrus.Logger
}

func NewPatientUsecase(repo repository.PatientRepository, log *logrus.Logger) PatientUsecase {
	return &patientUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Patient]("patients", repo, Codec[entity.Patient]{}, log),
		repo:            repo,
		log:             log,
	}
}

// Detail fetches the patient and the requested history page concurrently.
// A failure of either fails the whole detail.
func (u *patientUsecase) Detail(ctx context.Context, id string, state screen.ListState) (*PatientDetail, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	detail := &PatientDetail{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.repo.Get(gctx, id)
		detail.Patient = p
		return err
	})
	g.Go(func() error {
		h, err := u.repo.Histories(gctx, id, state.Query())
		detail.Histories = h
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load patient %s: %+v", id, err)
		return nil, err
	}

	detail.State = state.WithResult(detail.Histories.Total, detail.Histories.TotalPages)
	if detail.State.Page != state.Page {
		h, err := u.repo.Histories(ctx, id, detail.State.Query())
		if err != nil {
			u.log.Warnf("Failed to load patient %s history: %+v", id, err)
			return nil, err
		}
		detail.Histories = h
		detail.State = detail.State.WithResult(h.Total, h.TotalPages)
	}
	return detail, nil
}
