package entity

import "time"

// Patient is read-only at the console layer; histories are its child collection.
type Patient struct {
	ObjectID    string    `json:"_id"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Address     Address   `json:"address"`
	Doctor      string    `json:"doctorReferred,omitempty"`
}

// Age in whole years at now.
func (p *Patient) Age(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	years := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	return years
}

// PatientHistory is one diagnosis/treatment entry of a patient.
type PatientHistory struct {
	ObjectID  string    `json:"_id"`
	PatientID string    `json:"patientId"`
	Date      time.Time `json:"date"`
	Diagnosis string    `json:"diagnosis"`
	Treatment string    `json:"treatment"`
	Notes     string    `json:"notes"`
}
