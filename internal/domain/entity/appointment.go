package entity

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// NamedRef is a populated reference the backend embeds in list payloads.
type NamedRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Appointment struct {
	ObjectID string            `json:"_id"`
	Patient  NamedRef          `json:"patient"`
	Doctor   NamedRef          `json:"referredBy"`
	Scan     NamedRef          `json:"scan"`
	Date     time.Time         `json:"date"`
	Status   AppointmentStatus `json:"status"`
	Notes    string            `json:"notes"`
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AppointmentEvent is one entry of an appointment's status history.
type AppointmentEvent struct {
	Status    AppointmentStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
	ChangedBy string            `json:"changedBy"`
	Notes     string            `json:"notes"`
}
