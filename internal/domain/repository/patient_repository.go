package repository

import (
	"context"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type PatientRepository interface {
	ListRepository[entity.Patient]
	Histories(ctx context.Context, patientID string, query url.Values) (*entity.Page[entity.PatientHistory], error)
}

type AppointmentRepository interface {
	ListRepository[entity.Appointment]
	History(ctx context.Context, id string) ([]entity.AppointmentEvent, error)
}
