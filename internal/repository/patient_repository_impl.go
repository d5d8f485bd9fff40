package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type patientRepository struct {
	*backend.Collection[entity.Patient]
	histories *backend.Collection[entity.PatientHistory]
}

func NewPatientRepository(client *backend.Client) domainRepo.PatientRepository {
	return &patientRepository{
		Collection: backend.NewCollection[entity.Patient](client, "/patients", "patients"),
		histories:  backend.NewCollection[entity.PatientHistory](client, "/patient-histories", "histories"),
	}
}

func (r *patientRepository) Histories(ctx context.Context, patientID string, query url.Values) (*entity.Page[entity.PatientHistory], error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("patientId", patientID)
	return r.histories.List(ctx, q)
}

type appointmentRepository struct {
	*backend.Collection[entity.Appointment]
}

func NewAppointmentRepository(client *backend.Client) domainRepo.AppointmentRepository {
	return &appointmentRepository{
		Collection: backend.NewCollection[entity.Appointment](client, "/appointments", "appointments"),
	}
}

func (r *appointmentRepository) History(ctx context.Context, id string) ([]entity.AppointmentEvent, error) {
	var events []entity.AppointmentEvent
	if err := r.Client().Get(ctx, r.Path(id, "history"), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
