package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

const patientsBase = "/patients"

// PatientHandler is read-only: the list and a drilldown with history.
type PatientHandler struct {
	*ResourceHandler[entity.Patient]
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(base *Base, patientUsecase usecase.PatientUsecase) *PatientHandler {
	const ns = "patients"
	h := &PatientHandler{patientUsecase: patientUsecase}
	spec := ResourceSpec[entity.Patient]{
		Name:   ns,
		Module: ns,
		Base:   patientsBase,
		Nav:    ns,
		Columns: []ColumnSpec[entity.Patient]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, p *entity.Patient) view.Cell {
				return view.Cell{Text: p.Name}
			}},
			{Key: "gender", Label: "common.gender", Cell: func(t Translator, p *entity.Patient) view.Cell {
				if p.Gender == "" {
					return view.Cell{}
				}
				return view.Cell{Text: t("common." + p.Gender)}
			}},
			{Key: "age", Label: label(ns, "age"), Cell: func(_ Translator, p *entity.Patient) view.Cell {
				if p.DateOfBirth.IsZero() {
					return view.Cell{}
				}
				return view.Cell{Text: strconv.Itoa(p.Age(h.now()))}
			}},
			{Key: "phoneNumber", Label: label(ns, "phoneNumber"), Cell: func(_ Translator, p *entity.Patient) view.Cell {
				return view.Cell{Text: p.PhoneNumber, Class: "ltr"}
			}},
			{Key: "email", Label: label(ns, "email"), Cell: func(_ Translator, p *entity.Patient) view.Cell {
				return view.Cell{Text: p.Email}
			}},
		},
		DefaultSort: "createdAt",
		Searchable:  true,
		ID:          func(p *entity.Patient) string { return p.ObjectID },
		Label:       func(p *entity.Patient) string { return p.Name },
		DetailHref:  func(p *entity.Patient) string { return patientsBase + "/" + url.PathEscape(p.ObjectID) },
	}
	h.ResourceHandler = NewResourceHandler[entity.Patient](base, patientUsecase, spec)
	return h
}

func formatAddress(a entity.Address) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Detail shows the patient and one page of their history.
func (h *PatientHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	self := patientsBase + "/" + url.PathEscape(id)
	state := screen.ParseListState(r.URL.Query(), screen.NewListState(h.pageSize, "date"), "date")

	detail, err := h.patientUsecase.Detail(h.backendCtx(r), id, state)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.fallback(w, r, err, patientsBase)
		return
	}

	t := h.translator(r)
	p := detail.Patient
	age := ""
	if !p.DateOfBirth.IsZero() {
		age = strconv.Itoa(p.Age(h.now()))
	}
	gender := ""
	if p.Gender != "" {
		gender = t("common." + p.Gender)
	}

	hs := detail.State
	child := &view.ListView{
		Base:    self,
		Heading: t("patients.histories"),
		State:   hs,
		Loaded:  true,
		Columns: []view.Column{
			{Key: "date", Label: t("patients.history.date"), Sortable: true, SortHref: hs.SortHref(self, "date"), Sorted: hs.SortIndicator("date")},
			{Key: "diagnosis", Label: t("patients.history.diagnosis")},
			{Key: "treatment", Label: t("patients.history.treatment")},
			{Key: "notes", Label: t("patients.history.notes")},
		},
	}
	for _, e := range detail.Histories.Items {
		child.Rows = append(child.Rows, view.Row{ID: e.ObjectID, Cells: []view.Cell{
			{Text: formatDate(e.Date)},
			{Text: e.Diagnosis},
			{Text: e.Treatment},
			{Text: e.Notes},
		}})
	}
	if hs.CanPrev() {
		child.PrevHref = hs.PageHref(self, hs.Page-1)
	}
	if hs.CanNext() {
		child.NextHref = hs.PageHref(self, hs.Page+1)
	}

	dv := &view.DetailView{
		Heading:  p.Name,
		BackHref: patientsBase,
		Fields: []view.Card{
			{Label: t("common.gender"), Value: gender},
			{Label: t("patients.fields.age"), Value: age},
			{Label: t("patients.fields.dateOfBirth"), Value: formatDate(p.DateOfBirth)},
			{Label: t("patients.fields.phoneNumber"), Value: p.PhoneNumber},
			{Label: t("patients.fields.email"), Value: p.Email},
			{Label: t("patients.fields.address"), Value: formatAddress(p.Address)},
			{Label: t("patients.fields.doctor"), Value: p.Doctor},
		},
		Child: child,
	}
	h.render(w, r, http.StatusOK, view.PageDetail, h.page(r, p.Name, h.spec.Nav, dv))
}
