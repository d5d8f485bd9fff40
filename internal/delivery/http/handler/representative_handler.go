package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const representativesBase = "/admin/representatives"

type RepresentativeHandler struct {
	*ResourceHandler[entity.Representative]
	representativeUsecase usecase.RepresentativeUsecase
}

func NewRepresentativeHandler(base *Base, representativeUsecase usecase.RepresentativeUsecase) *RepresentativeHandler {
	h := &RepresentativeHandler{representativeUsecase: representativeUsecase}
	spec := ResourceSpec[entity.Representative]{
		Name:   "representatives",
		Module: "representatives",
		Base:   representativesBase,
		Nav:    "representatives",
		Schema: representativeSchema(),
		Columns: []ColumnSpec[entity.Representative]{
			{Key: "id", Label: label("representatives", "id"), Sortable: true, Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: r.ID}
			}},
			{Key: "name", Label: label("representatives", "name"), Sortable: true, Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: r.Name}
			}},
			{Key: "age", Label: label("representatives", "age"), Sortable: true, Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: strconv.Itoa(r.Age)}
			}},
			{Key: "phoneNumber", Label: label("representatives", "phoneNumber"), Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: r.PhoneNumber, Class: "ltr"}
			}},
			{Key: "patientsCount", Label: label("representatives", "patientsCount"), Sortable: true, Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: strconv.Itoa(r.PatientsCount)}
			}},
			{Key: "doctorsCount", Label: label("representatives", "doctorsCount"), Sortable: true, Cell: func(_ Translator, r *entity.Representative) view.Cell {
				return view.Cell{Text: strconv.Itoa(r.DoctorsCount)}
			}},
			{Key: "isActive", Label: label("representatives", "isActive"), Cell: func(t Translator, r *entity.Representative) view.Cell {
				return activeCell(t, r.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(r *entity.Representative) string { return r.ObjectID },
		Label:        func(r *entity.Representative) string { return r.Name },
	}
	spec.RowActions = h.rowActions
	spec.Dialogs = map[string]DialogFunc{"stats": h.statsDialog}
	h.ResourceHandler = NewResourceHandler[entity.Representative](base, representativeUsecase, spec)
	return h
}

func (h *RepresentativeHandler) rowActions(r *http.Request, state screen.ListState, rep *entity.Representative) []view.Action {
	t := h.translator(r)
	actions := []view.Action{{
		Label: t("representatives.stats"),
		Href:  h.href(state, nil, "dialog", "stats", "id", rep.ObjectID),
	}}
	if h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		actions = append(actions, view.Action{
			Label:  t("representatives.recount"),
			Href:   representativesBase + "/" + url.PathEscape(rep.ObjectID) + "/recount",
			Method: http.MethodPost,
			Hidden: map[string]string{"return": state.URLQuery().Encode()},
		})
	}
	return actions
}

func (h *RepresentativeHandler) statsDialog(r *http.Request, lv *view.ListView) {
	id := r.URL.Query().Get("id")
	stats, err := h.representativeUsecase.Stats(h.backendCtx(r), id)
	if err != nil {
		h.failure(r, err)
		return
	}
	t := h.translator(r)
	lv.Stats = &view.StatsView{
		Title:     t("representatives.statsTitle"),
		CloseHref: h.href(lv.State, nil),
		Cards: []view.Card{
			{Label: t("representatives.fields.patientsCount"), Value: strconv.Itoa(stats.PatientsCount)},
			{Label: t("representatives.fields.doctorsCount"), Value: strconv.Itoa(stats.DoctorsCount)},
			{Label: t("representatives.scansCount"), Value: strconv.Itoa(stats.ScansCount)},
			{Label: t("representatives.totalRevenue"), Value: formatMoney(decimal.NewFromFloat(stats.TotalRevenue))},
		},
		Monthly:    stats.MonthlyReferrals,
		MonthLabel: t("representatives.month"),
		CountLabel: t("representatives.referrals"),
	}
}

// Recount asks the backend to recompute one representative's counters.
func (h *RepresentativeHandler) Recount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_ = r.ParseForm()
	state, _ := h.returnState(r)
	back := h.href(state, nil)

	if !h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		h.forbidden(w, r, back)
		return
	}

	ctx := h.backendCtx(r)
	rep, err := h.representativeUsecase.Recount(ctx, id)
	h.audit.LogAction(ctx, h.principal(r), "recount", h.spec.Name, id, err)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, back)
		return
	}
	name := id
	if rep != nil {
		name = rep.Name
	}
	h.notify(r, feedback.SeveritySuccess, h.tp(r, "representatives.recounted", map[string]interface{}{"Name": name}))
	response.SeeOther(w, r, back)
}
