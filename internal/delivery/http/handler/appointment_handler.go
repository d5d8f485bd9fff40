package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

const appointmentsBase = "/appointments"

type AppointmentHandler struct {
	*ResourceHandler[entity.Appointment]
	appointmentUsecase usecase.AppointmentUsecase
}

func statusCell(t Translator, s entity.AppointmentStatus) view.Cell {
	chip := "info"
	switch s {
	case entity.AppointmentStatusCompleted:
		chip = "active"
	case entity.AppointmentStatusCancelled:
		chip = "inactive"
	}
	return view.Cell{Text: t("appointments.status." + string(s)), Chip: chip}
}

func appointmentColumns() []ColumnSpec[entity.Appointment] {
	const ns = "appointments"
	return []ColumnSpec[entity.Appointment]{
		{Key: "date", Label: label(ns, "date"), Sortable: true, Cell: func(_ Translator, a *entity.Appointment) view.Cell {
			return view.Cell{Text: formatDateTime(a.Date)}
		}},
		{Key: "patient", Label: label(ns, "patient"), Cell: func(_ Translator, a *entity.Appointment) view.Cell {
			return view.Cell{Text: a.Patient.Name, Href: patientsBase + "/" + url.PathEscape(a.Patient.ID)}
		}},
		{Key: "scan", Label: label(ns, "scan"), Cell: func(_ Translator, a *entity.Appointment) view.Cell {
			return view.Cell{Text: a.Scan.Name}
		}},
		{Key: "doctor", Label: label(ns, "doctor"), Cell: func(_ Translator, a *entity.Appointment) view.Cell {
			return view.Cell{Text: a.Doctor.Name}
		}},
		{Key: "status", Label: label(ns, "status"), Sortable: true, Cell: func(t Translator, a *entity.Appointment) view.Cell {
			return statusCell(t, a.Status)
		}},
	}
}

func appointmentHref(id string) string {
	return appointmentsBase + "/" + url.PathEscape(id) + "/history"
}

func NewAppointmentHandler(base *Base, appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	spec := ResourceSpec[entity.Appointment]{
		Name:        "appointments",
		Module:      "appointments",
		Base:        appointmentsBase,
		Nav:         "appointments",
		Columns:     appointmentColumns(),
		DefaultSort: "date",
		Searchable:  true,
		ID:          func(a *entity.Appointment) string { return a.ObjectID },
		Label:       func(a *entity.Appointment) string { return a.Patient.Name },
		DetailHref:  func(a *entity.Appointment) string { return appointmentHref(a.ObjectID) },
	}
	return &AppointmentHandler{
		ResourceHandler:    NewResourceHandler[entity.Appointment](base, appointmentUsecase, spec),
		appointmentUsecase: appointmentUsecase,
	}
}

// History shows an appointment and its status trail.
func (h *AppointmentHandler) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	hist, err := h.appointmentUsecase.History(h.backendCtx(r), id)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.fallback(w, r, err, appointmentsBase)
		return
	}

	t := h.translator(r)
	a := hist.Appointment
	dv := &view.DetailView{
		Heading:  t("appointments.historyTitle"),
		BackHref: appointmentsBase,
		Fields: []view.Card{
			{Label: t("appointments.fields.patient"), Value: a.Patient.Name},
			{Label: t("appointments.fields.scan"), Value: a.Scan.Name},
			{Label: t("appointments.fields.doctor"), Value: a.Doctor.Name},
			{Label: t("appointments.fields.date"), Value: formatDateTime(a.Date)},
			{Label: t("appointments.fields.status"), Value: t("appointments.status." + string(a.Status))},
			{Label: t("appointments.fields.notes"), Value: a.Notes},
		},
		Columns: []view.Column{
			{Key: "status", Label: t("appointments.fields.status")},
			{Key: "changedAt", Label: t("appointments.changedAt")},
			{Key: "changedBy", Label: t("appointments.changedBy")},
			{Key: "notes", Label: t("appointments.fields.notes")},
		},
	}
	for i, e := range hist.Events {
		dv.Events = append(dv.Events, view.Row{ID: strconv.Itoa(i + 1), Cells: []view.Cell{
			statusCell(t, e.Status),
			{Text: formatDateTime(e.ChangedAt)},
			{Text: e.ChangedBy},
			{Text: e.Notes},
		}})
	}
	h.render(w, r, http.StatusOK, view.PageDetail, h.page(r, dv.Heading, h.spec.Nav, dv))
}
